package prompt

import (
	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
	"mindfulsteps/internal/domain/photo"
)

var (
	listTypes   []string
	randomTypes []string
)

// PromptCmd каталог упражнений для осознанных пауз
var PromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Упражнения для осознанных пауз",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Каталог упражнений",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		enabled, err := photo.ParsePromptTypes(listTypes)
		if err != nil {
			return err
		}
		return types.Printer(cmd).Prompts(photo.Prompts(enabled...))
	},
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Случайное упражнение",
	Long:  `Выбирает упражнение среди включенных типов. Без типов предлагается взгляд вверх.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		enabled, err := photo.ParsePromptTypes(randomTypes)
		if err != nil {
			return err
		}
		return types.Printer(cmd).Prompt(photo.RandomPrompt(nil, enabled...))
	},
}

func init() {
	listCmd.Flags().StringSliceVarP(&listTypes, "type", "t", nil, "фильтр по типу (photo, sensory, breathing, reflection)")
	randomCmd.Flags().StringSliceVarP(&randomTypes, "type", "t",
		[]string{string(photo.PromptSensory), string(photo.PromptBreathing), string(photo.PromptReflection)},
		"включенные типы")

	PromptCmd.AddCommand(listCmd, randomCmd)
}
