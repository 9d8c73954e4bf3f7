package walk

import (
	"fmt"

	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
	"mindfulsteps/internal/domain/walklog"
)

var (
	moodBefore int
	moodAfter  int
	notes      string
	endAt      locationFlags
)

var endCmd = &cobra.Command{
	Use:   "end <id>",
	Short: "Завершить прогулку",
	Long: `Фиксирует время окончания, длительность и темп, сохраняет прогулку
и продлевает серию дней подряд.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		var mood *walklog.Mood
		if moodBefore != 0 || moodAfter != 0 {
			if !validMood(moodBefore) || !validMood(moodAfter) {
				return fmt.Errorf("настроение задается числом от 1 до 5")
			}
			mood = &walklog.Mood{Before: moodBefore, After: moodAfter}
		}

		loc, err := endAt.location(cmd)
		if err != nil {
			return err
		}

		res := app.EndWalk(cmd.Context(), args[0], loc, mood, notes)
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.WalkEnd(res.Value)
	},
}

func validMood(v int) bool {
	return v >= 1 && v <= 5
}

func init() {
	endCmd.Flags().IntVar(&moodBefore, "mood-before", 0, "настроение до прогулки (1-5)")
	endCmd.Flags().IntVar(&moodAfter, "mood-after", 0, "настроение после прогулки (1-5)")
	endCmd.Flags().StringVarP(&notes, "notes", "n", "", "заметки")
	endAt.register(endCmd)
}
