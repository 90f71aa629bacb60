package converter

import (
	"fmt"
	ftbquests "github.com/terrarium-earth/odysseus/ftb-quests"
	"github.com/terrarium-earth/odysseus/heracles"
	"math"
)

const (
	coordinateScale = 32
	circleShape     = "circle"
)

type chapterContext struct {
	pack    *ftbquests.Pack
	chapter *ftbquests.Chapter
	title   string // formatted chapter title, may be empty
}

// convertQuest assembles the Heracles record of one quest together with the
// warnings raised by its tasks and rewards.
func convertQuest(q ftbquests.Quest, c chapterContext) (heracles.Quest, []string) {
	var warnings []string

	tasks := make(heracles.TaskMap, len(q.Tasks))
	var taskIDs []string
	for _, task := range q.Tasks {
		t, err := ConvertTask(task, c.pack.QuestFile)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		id := string(task.Header().ID)
		if _, ok := tasks[id]; !ok {
			taskIDs = append(taskIDs, id)
		}
		tasks[id] = t
	}

	rewards := make(heracles.RewardMap, len(q.Rewards))
	var rewardIDs []string
	for _, reward := range q.Rewards {
		r, err := ConvertReward(reward, c.pack.RewardTables)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		id := string(reward.Header().ID)
		if _, ok := rewards[id]; !ok {
			rewardIDs = append(rewardIDs, id)
		}
		rewards[id] = r
	}

	display := heracles.Display{
		Title: formatString(q.Title),
		Icon:  convertIcon(q.Icon),
	}
	if len(taskIDs) == 1 {
		task := tasks[taskIDs[0]]
		if display.Title == "" {
			display.Title = orDefault(task.Header().Title, inferTitle(task))
		}
		if display.Icon == nil {
			display.Icon = task.Header().Icon
		}
		if display.Icon == nil {
			display.Icon = inferIcon(task)
		}
	}

	subtitle := formatString(q.Subtitle)
	if subtitle != "" {
		display.Subtitle = &heracles.Text{Text: subtitle}
	}
	display.Description = describe(q, subtitle != "", taskIDs, rewardIDs)

	if effectiveShape(q, c) == circleShape {
		display.IconBackground = heracles.CirclesBackground
	}
	if c.title != "" {
		display.Groups = map[string]heracles.GroupPlacement{
			c.title: {Position: [2]int{scaleCoordinate(q.X), scaleCoordinate(q.Y)}},
		}
	}

	out := heracles.Quest{
		Display: display,
		Tasks:   tasks,
		Rewards: rewards,
	}
	switch {
	case q.Invisible:
		out.Settings.Hidden = heracles.HiddenCompleted
	case q.Hide:
		out.Settings.Hidden = heracles.HiddenInProgress
	}
	for _, dep := range q.Dependencies {
		out.Dependencies = append(out.Dependencies, string(dep))
	}
	return out, warnings
}

// describe builds the description widgets: subtitle, task list, the authored
// lines and the reward list, separated by rules.
func describe(q ftbquests.Quest, hasSubtitle bool, taskIDs, rewardIDs []string) []string {
	var lines []string
	if hasSubtitle {
		lines = append(lines,
			fmt.Sprintf(`<subtitle id="%s" bold="true" centered="true" color="lightgray"/>`, q.ID),
			"<hr/>",
		)
	}
	if len(taskIDs) > 0 {
		for _, id := range taskIDs {
			lines = append(lines, fmt.Sprintf(`<task task="%s" quest="%s"/>`, id, q.ID))
		}
		lines = append(lines, "<hr/>")
	}
	for _, line := range q.Description {
		line = formatString(line)
		if line == "" {
			line = "<br/>"
		}
		lines = append(lines, line)
	}
	if len(rewardIDs) > 0 {
		lines = append(lines, "<hr/>")
		for _, id := range rewardIDs {
			lines = append(lines, fmt.Sprintf(`<reward reward="%s" quest="%s"/>`, id, q.ID))
		}
	}
	return escapeFormatters(lines)
}

func effectiveShape(q ftbquests.Quest, c chapterContext) string {
	for _, shape := range []string{q.Shape, c.chapter.DefaultQuestShape, c.pack.QuestFile.DefaultQuestShape} {
		if shape != "" {
			return shape
		}
	}
	return ""
}

// scaleCoordinate rounds half up, so -0.5 maps to 0.
func scaleCoordinate(v float64) int {
	return int(math.Floor(v*coordinateScale + 0.5))
}
