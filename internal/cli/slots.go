package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	adminBlockRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/adminblock"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	menuRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/menu"
	settingsRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	menusService "github.com/m04kA/SMC-SalonBooking/internal/service/menus"
	settingsService "github.com/m04kA/SMC-SalonBooking/internal/service/settings"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

// NewSlotsCmd печатает свободные начала для дня так, как их видит администратор
func NewSlotsCmd(configPath *string) *cobra.Command {
	var (
		date        string
		menuIDs     []int64
		newCustomer bool
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print available start times for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := handlers.ParseDate(date)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			defaults, err := cfg.Schedule.ToDomain()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			sqlDB, err := openDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			db := dbmetrics.Wrap(sqlDB, nil)

			calculator := availability.NewCalculator(bookingRepo.NewRepository(db), adminBlockRepo.NewRepository(db), log)
			useCase := getAvailableSlotsUC.NewUseCase(
				menusService.NewService(menuRepo.NewRepository(db), log),
				settingsService.NewService(settingsRepo.NewRepository(db), defaults, log),
				calculator,
				log,
			)

			resp, err := useCase.Execute(ctx, &getAvailableSlotsUC.Request{
				Date:          day,
				MenuIDs:       menuIDs,
				IsNewCustomer: newCustomer,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: duration=%dm buffer=%dm\n",
				resp.Date.Format(domain.DateFormat), resp.DurationMinutes, resp.BufferMinutes)
			if len(resp.Slots) == 0 {
				fmt.Fprintln(out, "no available slots")
				return nil
			}
			starts := make([]string, 0, len(resp.Slots))
			for _, s := range resp.Slots {
				starts = append(starts, s.String())
			}
			fmt.Fprintln(out, strings.Join(starts, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day in YYYY-MM-DD")
	cmd.Flags().Int64SliceVar(&menuIDs, "menu", nil, "menu id, repeat for add-ons (main first)")
	cmd.Flags().BoolVar(&newCustomer, "new-customer", true, "use the first-visit buffer")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("menu")
	return cmd
}
