package converter

import (
	"context"
	"fmt"
	"github.com/Masterminds/semver/v3"
	mapset "github.com/deckarep/golang-set/v2"
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"path"
	"slices"
	"strconv"
	"strings"
)

const (
	GroupsFile = "groups.txt"
	QuestsDir  = "quests"

	// SupportedVersions is the range of data.snbt format versions the
	// converter has been checked against.
	SupportedVersions = "<= 13"

	defaultWorkers = 8
)

var supportedVersions = mustConstraint(SupportedVersions)

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// OutputFS receives converted resources under / separated virtual paths.
// WriteFile may be called from several goroutines at once.
type OutputFS interface {
	WriteFile(name string, data []byte) error
}

type Converter struct {
	Log     *zap.Logger
	Workers int // concurrent quest writes, defaults to 8
}

// Convert runs a conversion with the default options.
func Convert(ctx context.Context, in ftbquests.InputFS, out OutputFS) ([]string, error) {
	return new(Converter).Convert(ctx, in, out)
}

// Convert reads the pack from in and writes one JSON file per quest plus the
// groups index to out. Fatal errors abort the run before the index is
// written. Warnings are returned sorted and without duplicates.
func (c *Converter) Convert(ctx context.Context, in ftbquests.InputFS, out OutputFS) ([]string, error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	pack, err := ftbquests.Read(ctx, in)
	if err != nil {
		return nil, err
	}
	log.Debug("Read quest pack",
		zap.Int("groups", len(pack.Groups)),
		zap.Int("chapters", len(pack.Chapters)),
		zap.Int("rewardTables", len(pack.RewardTables)),
	)

	warnings := mapset.NewThreadUnsafeSet[string]()
	if msg := checkVersion(pack.QuestFile.Version); msg != "" {
		warnings.Add(msg)
	}

	g, gctx := errgroup.WithContext(ctx)
	workers := c.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	g.SetLimit(workers)

	var titles []string
	quests := 0
walk:
	for _, bucket := range bucketChapters(pack) {
		for i := range bucket.chapters {
			chapter := &bucket.chapters[i]
			cc := chapterContext{pack: pack, chapter: chapter, title: formatString(chapter.Title)}
			if cc.title != "" {
				titles = append(titles, cc.title)
			}
			dir := chapterDir(bucket.segment, cc.title, chapter)
			log.Debug("Converting chapter", zap.String("chapter", string(chapter.ID)), zap.String("dir", dir))

			for _, q := range chapter.Quests {
				if gctx.Err() != nil {
					break walk
				}
				quest, questWarnings := convertQuest(q, cc)
				warnings.Append(questWarnings...)

				name := path.Join(dir, string(q.ID)+".json")
				quests++
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					data, err := quest.Encode()
					if err != nil {
						return fmt.Errorf("encode %s: %w", name, err)
					}
					if err := out.WriteFile(name, data); err != nil {
						return fmt.Errorf("write %s: %w", name, err)
					}
					return nil
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := out.WriteFile(GroupsFile, []byte(strings.Join(titles, "\n"))); err != nil {
		return nil, fmt.Errorf("write %s: %w", GroupsFile, err)
	}

	result := warnings.ToSlice()
	slices.Sort(result)
	log.Info("Converted quest pack", zap.Int("quests", quests), zap.Int("warnings", len(result)))
	return result, nil
}

type chapterBucket struct {
	segment  string // group directory, empty for ungrouped chapters
	chapters []ftbquests.Chapter
}

// bucketChapters orders chapters by declared group, then order index. Chapters
// without a known group come last.
func bucketChapters(pack *ftbquests.Pack) []chapterBucket {
	byGroup := make(map[ftbquests.ID][]ftbquests.Chapter)
	for _, chapter := range pack.Chapters {
		byGroup[chapter.Group] = append(byGroup[chapter.Group], chapter)
	}

	buckets := make([]chapterBucket, 0, len(pack.Groups)+1)
	seen := make(map[ftbquests.ID]bool)
	for _, group := range pack.Groups {
		if seen[group.ID] {
			continue
		}
		seen[group.ID] = true
		buckets = append(buckets, chapterBucket{segment: groupSegment(group), chapters: byGroup[group.ID]})
	}

	var ungrouped []ftbquests.Chapter
	for _, chapter := range pack.Chapters {
		if !seen[chapter.Group] {
			ungrouped = append(ungrouped, chapter)
		}
	}
	return append(buckets, chapterBucket{chapters: ungrouped})
}

func groupSegment(group ftbquests.ChapterGroup) string {
	title := strings.ReplaceAll(formatString(group.Title), "/", "_")
	if title == "" {
		return string(group.ID)
	}
	return title
}

func chapterDir(group, title string, chapter *ftbquests.Chapter) string {
	segment := sanitizeSegment(title)
	if segment == "" {
		segment = sanitizeSegment(chapter.Filename)
	}
	if segment == "" {
		segment = string(chapter.ID)
	}
	return path.Join(QuestsDir, group, segment)
}

// checkVersion returns a warning when the pack format is outside the tested
// range.
func checkVersion(version *int) string {
	if version == nil {
		return ""
	}
	v, err := semver.NewVersion(strconv.Itoa(*version))
	if err != nil {
		return fmt.Sprintf("Unrecognised quest file version %d.", *version)
	}
	if !supportedVersions.Check(v) {
		return fmt.Sprintf("Quest file version %d is newer than the tested versions (%s), the output may be incomplete.", *version, SupportedVersions)
	}
	return ""
}
