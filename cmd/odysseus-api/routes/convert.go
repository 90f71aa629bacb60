package routes

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"github.com/julienschmidt/httprouter"
	"github.com/terrarium-earth/odysseus/converter"
	"github.com/terrarium-earth/odysseus/database"
	"github.com/terrarium-earth/odysseus/database/types"
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	questfs "github.com/terrarium-earth/odysseus/quest-fs"
	"github.com/terrarium-earth/odysseus/snbt"
	"go.uber.org/zap"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const FormatFtb = "ftb"

func (r routeCtx) convertPost(rw http.ResponseWriter, req *http.Request, params httprouter.Params) {
	conf := r.config.Load()
	bearer, _ := getBearer(req)
	client, ok := conf.Client(bearer)
	if !ok {
		http.Error(rw, "403 Forbidden", http.StatusForbidden)
		return
	}
	switch strings.ToLower(req.FormValue("type")) {
	case "", FormatFtb:
	case "hqm":
		http.Error(rw, "HQM quests are not supported", http.StatusBadRequest)
		return
	default:
		http.Error(rw, "Invalid quest type", http.StatusBadRequest)
		return
	}

	limit := conf.UploadLimit()
	mpFile, mpFileHeader, err := req.FormFile("quests")
	if err != nil {
		http.Error(rw, "Invalid file", http.StatusBadRequest)
		return
	}
	if mpFileHeader.Size > limit {
		http.Error(rw, "File too big", http.StatusRequestEntityTooLarge)
		return
	}

	fileBuffer := new(bytes.Buffer)
	_, err = io.CopyN(fileBuffer, mpFile, limit)
	if err != nil && !errors.Is(err, io.EOF) {
		http.Error(rw, "Failed to transfer file", http.StatusInternalServerError)
		return
	}

	h512 := sha512.Sum512(fileBuffer.Bytes())
	h512hex := hex.EncodeToString(h512[:])

	in, err := questfs.OpenZipInput(bytes.NewReader(fileBuffer.Bytes()), int64(fileBuffer.Len()))
	switch {
	case errors.Is(err, questfs.ErrNoQuestFile):
		http.Error(rw, "Archive does not contain "+ftbquests.QuestFileName, http.StatusBadRequest)
		return
	case err != nil:
		http.Error(rw, "Invalid zip archive", http.StatusBadRequest)
		return
	}

	out := questfs.NewMemoryOutput()
	c := &converter.Converter{Log: r.log.With(zap.String("client", client), zap.String("sha512", h512hex)), Workers: conf.Workers}
	warnings, err := c.Convert(req.Context(), in, out)
	if err != nil {
		var syntaxErr *snbt.SyntaxError
		var readErr *ftbquests.ReadError
		if errors.As(err, &syntaxErr) || errors.As(err, &readErr) {
			http.Error(rw, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		r.log.Error("Conversion failed", zap.Error(err))
		http.Error(rw, "Conversion failed", http.StatusInternalServerError)
		return
	}

	files := out.Files()
	archive, err := zipFiles(files)
	if err != nil {
		r.log.Error("Failed to build archive", zap.Error(err))
		http.Error(rw, "Failed to build archive", http.StatusInternalServerError)
		return
	}

	id, err := r.db.CreateConversion(req.Context(), database.CreateConversionParams{
		Filename: mpFileHeader.Filename,
		Sha512:   h512hex,
		Meta: &types.ConversionMeta{
			Format:   FormatFtb,
			Quests:   len(files) - 1,
			Warnings: warnings,
		},
	})
	if err != nil {
		r.log.Error("Database error", zap.Error(err))
		http.Error(rw, "Database Error", http.StatusInternalServerError)
		return
	}
	r.log.Info("Converted upload", zap.String("client", client), zap.Int64("id", id), zap.Int("warnings", len(warnings)))

	rw.Header().Set("Content-Type", "application/zip")
	rw.Header().Set("Content-Disposition", `attachment; filename="heracles-quests.zip"`)
	rw.Header().Set("X-Conversion-Id", strconv.FormatInt(id, 10))
	rw.Header().Set("X-Conversion-Warnings", strconv.Itoa(len(warnings)))
	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write(archive)
}

// zipFiles writes files into an archive in name order.
func zipFiles(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for k := range files {
		names = append(names, k)
	}
	slices.Sort(names)

	buf := new(bytes.Buffer)
	out := questfs.NewZipOutput(buf)
	for _, name := range names {
		if err := out.WriteFile(name, files[name]); err != nil {
			return nil, err
		}
	}
	if err := out.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
