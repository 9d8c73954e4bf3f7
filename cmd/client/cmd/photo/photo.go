package photo

import (
	"fmt"

	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
	"mindfulsteps/internal/domain/photo"
)

var (
	promptID    string
	promptTitle string
	promptType  string
	note        string
	walkID      string
	lat, lng    float64
)

// PhotoCmd - снимки осознанных пауз
var PhotoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Снимки осознанных пауз",
}

var captureCmd = &cobra.Command{
	Use:   "capture <file>",
	Short: "Сохранить снимок",
	Long: `Загружает изображение в хранилище сервера и создает запись о снимке.
Без связи с сервером изображение встраивается в запись как data URL.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		prompt, err := capturePrompt(cmd)
		if err != nil {
			return err
		}

		var loc *photo.GeoPoint
		if cmd.Flags().Changed("lat") {
			if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
				return fmt.Errorf("координаты вне диапазона: широта от -90 до 90, долгота от -180 до 180")
			}
			loc = &photo.GeoPoint{Latitude: lat, Longitude: lng}
		}

		res := app.Capture(cmd.Context(), args[0], prompt, note, walkID, loc)
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Photo(res.Value)
	},
}

// capturePrompt берет упражнение из каталога по --prompt-id; неизвестный
// идентификатор допустим, тогда тип и текст задаются флагами
func capturePrompt(cmd *cobra.Command) (photo.Prompt, error) {
	if known, ok := photo.FindPrompt(promptID); ok {
		if cmd.Flags().Changed("prompt-title") {
			known.Title = promptTitle
		}
		return known, nil
	}

	pt := photo.PromptType(promptType)
	if !pt.Valid() {
		return photo.Prompt{}, fmt.Errorf("неизвестный тип подсказки %q (photo, sensory, breathing, reflection)", promptType)
	}
	return photo.Prompt{ID: promptID, Title: promptTitle, Type: pt}, nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Список снимков",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.Sync().GetPhotos(cmd.Context())
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Photos(res.Value)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить снимок",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.Sync().DeletePhoto(cmd.Context(), args[0])
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		p.Message("Снимок %s удален", args[0])
		return nil
	},
}

func init() {
	captureCmd.Flags().StringVar(&promptID, "prompt-id", "", "идентификатор подсказки из каталога (mindful-steps prompt list)")
	captureCmd.Flags().StringVar(&promptTitle, "prompt-title", "", "текст подсказки")
	captureCmd.Flags().StringVarP(&promptType, "type", "t", string(photo.PromptPhoto), "тип подсказки")
	captureCmd.Flags().StringVarP(&note, "note", "n", "", "заметка")
	captureCmd.Flags().StringVarP(&walkID, "walk", "w", "", "прогулка, к которой относится снимок")
	captureCmd.Flags().Float64Var(&lat, "lat", 0, "широта места съемки")
	captureCmd.Flags().Float64Var(&lng, "lng", 0, "долгота места съемки")
	captureCmd.MarkFlagsRequiredTogether("lat", "lng")

	PhotoCmd.AddCommand(captureCmd, listCmd, deleteCmd)
}
