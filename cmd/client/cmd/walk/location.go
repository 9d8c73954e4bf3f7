package walk

import (
	"fmt"

	"github.com/spf13/cobra"

	"mindfulsteps/internal/domain/walklog"
)

// locationFlags координаты, переданные флагами --lat и --lng
type locationFlags struct {
	lat, lng float64
	address  string
}

func (f *locationFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "широта")
	cmd.Flags().Float64Var(&f.lng, "lng", 0, "долгота")
	cmd.Flags().StringVar(&f.address, "address", "", "адрес места")
	cmd.MarkFlagsRequiredTogether("lat", "lng")
}

// location возвращает nil, если координаты не заданы
func (f *locationFlags) location(cmd *cobra.Command) (*walklog.Location, error) {
	if !cmd.Flags().Changed("lat") {
		if f.address != "" {
			return nil, fmt.Errorf("адрес задается вместе с --lat и --lng")
		}
		return nil, nil
	}
	loc := walklog.Location{Lat: f.lat, Lng: f.lng, Address: f.address}
	if !loc.Valid() {
		return nil, fmt.Errorf("координаты вне диапазона: широта от -90 до 90, долгота от -180 до 180")
	}
	return &loc, nil
}
