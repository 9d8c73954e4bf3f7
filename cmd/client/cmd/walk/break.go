package walk

import (
	"fmt"

	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
	"mindfulsteps/internal/app/client/output"
	"mindfulsteps/internal/domain/photo"
)

var (
	breakTypes []string
	minSteps   int
	maxSteps   int
)

var breakCmd = &cobra.Command{
	Use:   "break <id>",
	Short: "Засчитать осознанную паузу",
	Long: `Увеличивает счетчик пауз активной прогулки, предлагает упражнение
для следующей паузы и число шагов до нее.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if minSteps <= 0 || maxSteps < minSteps {
			return fmt.Errorf("интервал шагов задается как 0 < --min-steps <= --max-steps")
		}
		enabled, err := photo.ParsePromptTypes(breakTypes)
		if err != nil {
			return err
		}

		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.CompleteBreak(cmd.Context(), args[0])
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Break(output.BreakPlan{
			Walk:      res.Value,
			Prompt:    photo.RandomPrompt(nil, enabled...),
			NextAfter: photo.RandomStepsInterval(nil, minSteps, maxSteps),
		})
	},
}

func init() {
	breakCmd.Flags().StringSliceVarP(&breakTypes, "type", "t",
		[]string{string(photo.PromptSensory), string(photo.PromptBreathing), string(photo.PromptReflection)},
		"типы упражнений (photo, sensory, breathing, reflection)")
	breakCmd.Flags().IntVar(&minSteps, "min-steps", 500, "минимум шагов до следующей паузы")
	breakCmd.Flags().IntVar(&maxSteps, "max-steps", 1500, "максимум шагов до следующей паузы")
}
