package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/cobra"

	"freight-planner-service/internal/adapters/publisher"
	"freight-planner-service/internal/adapters/repositories"
	"freight-planner-service/internal/api/dto"
	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/geography"
	"freight-planner-service/internal/motion"
	"freight-planner-service/internal/platform/ids"
	"freight-planner-service/internal/platform/obs"
	"freight-planner-service/internal/ports"
	"freight-planner-service/internal/services"
)

// app holds what every subcommand needs. The engine runs in-process against
// the built-in catalog and an in-memory shipment store.
type app struct {
	out      io.Writer
	errOut   io.Writer
	logLevel string
	strict   bool
	pretty   bool

	logger log.Logger
	ids    *ids.Generator
	svc    services.Service
}

func (a *app) init() error {
	logger, err := obs.NewLogger(a.errOut, a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	a.ids = ids.New()

	opts := []motion.Option{motion.WithLogger(logger)}
	if a.strict {
		opts = append(opts, motion.WithStrictFuel())
	}
	a.svc = services.NewService(
		geography.Default(),
		repositories.NewMemoryShipmentRepository(),
		a.ids,
		motion.NewSimulator(opts...),
		logger,
	)
	return nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	if a.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "freightctl",
		Short: "Plan, price and simulate multi-modal freight shipments",
		Long: `freightctl runs the freight planning engine locally.

Locations are catalog codes (see "freightctl locations") or "lat,lng" pairs.
Output is JSON.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.strict, "strict-fuel", false, "refuse moves the tank cannot cover")
	root.PersistentFlags().BoolVar(&a.pretty, "pretty", true, "indent JSON output")

	root.AddCommand(
		newLocationsCmd(a),
		newAnalyzeCmd(a),
		newQuoteCmd(a),
		newCompareCmd(a),
		newSimulateCmd(a),
	)
	return root
}

// parseRef accepts a catalog code or "lat,lng".
func parseRef(s string) (services.LocationRef, error) {
	s = strings.TrimSpace(s)
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return services.Code(s), nil
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return services.LocationRef{}, fmt.Errorf("location %q: bad latitude: %w", s, err)
	}
	ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return services.LocationRef{}, fmt.Errorf("location %q: bad longitude: %w", s, err)
	}
	return services.Coordinates(la, ln), nil
}

func parseEndpoints(args []string) (services.LocationRef, services.LocationRef, error) {
	o, err := parseRef(args[0])
	if err != nil {
		return o, o, err
	}
	d, err := parseRef(args[1])
	return o, d, err
}

func newLocationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the built-in location catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locs, err := a.svc.Locations(cmd.Context())
			if err != nil {
				return err
			}
			res := dto.ListLocationsResponse{Locations: make([]dto.LocationResponse, 0, len(locs))}
			for _, l := range locs {
				res.Locations = append(res.Locations, dto.NewLocationResponse(l))
			}
			return a.print(res)
		},
	}
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var weight float64
	cmd := &cobra.Command{
		Use:   "analyze <origin> <destination>",
		Short: "Report which transport modes can serve a route",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, d, err := parseEndpoints(args)
			if err != nil {
				return err
			}
			av, err := a.svc.AnalyzeRoute(cmd.Context(), o, d, weight)
			if err != nil {
				return err
			}
			return a.print(dto.AnalyzeRouteResponse{TransportAvailability: av, HasRecommendation: av.HasRecommendation()})
		},
	}
	cmd.Flags().Float64VarP(&weight, "weight", "w", 0, "cargo weight in kg (0 uses the default)")
	return cmd
}

type quoteFlags struct {
	weight    float64
	urgency   string
	kind      string
	insurance float64
	customer  string
}

func (f *quoteFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.weight, "weight", "w", 0, "cargo weight in kg")
	cmd.Flags().StringVarP(&f.urgency, "urgency", "u", "standard", "critical, high, standard or low")
	cmd.Flags().StringVarP(&f.kind, "type", "t", "STANDARD", "STANDARD, EXPRESS, OVERNIGHT, FRAGILE or HAZARDOUS")
	cmd.Flags().Float64Var(&f.insurance, "insurance", 0, "declared value to insure")
	cmd.Flags().StringVar(&f.customer, "customer", "", "customer id")
	_ = cmd.MarkFlagRequired("weight")
}

func (f *quoteFlags) request(args []string, assign bool) (services.ShipmentRequest, error) {
	o, d, err := parseEndpoints(args)
	if err != nil {
		return services.ShipmentRequest{}, err
	}
	return services.ShipmentRequest{
		CustomerID:     f.customer,
		WeightKg:       f.weight,
		Origin:         o,
		Destination:    d,
		Urgency:        domain.Urgency(strings.ToLower(f.urgency)),
		ShipmentType:   domain.ShipmentType(strings.ToUpper(f.kind)),
		InsuranceValue: f.insurance,
		Assign:         assign,
	}, nil
}

func quoteResponse(q *services.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		Shipment:              dto.NewShipmentResponse(q.Shipment),
		Vehicle:               dto.NewVehicleResponse(q.Vehicle),
		Strategy:              q.Strategy.Name(),
		EstimatedCost:         q.EstimatedCost,
		EstimatedDeliveryDays: q.EstimatedDeliveryDays,
		DistanceKm:            q.DistanceKm,
		Availability:          q.Availability,
	}
}

func newQuoteCmd(a *app) *cobra.Command {
	var f quoteFlags
	cmd := &cobra.Command{
		Use:   "quote <origin> <destination>",
		Short: "Plan and price a shipment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(args, false)
			if err != nil {
				return err
			}
			q, err := a.svc.QuoteShipment(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(quoteResponse(q))
		},
	}
	f.register(cmd)
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var weight, distance float64
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Price a weight and distance with every strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.svc.ComparePricing(cmd.Context(), weight, distance)
			if err != nil {
				return err
			}
			return a.print(dto.ComparePricingResponse{WeightKg: weight, DistanceKm: distance, Options: rows})
		},
	}
	cmd.Flags().Float64VarP(&weight, "weight", "w", 0, "cargo weight in kg")
	cmd.Flags().Float64VarP(&distance, "distance", "d", 0, "distance in km")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("distance")
	return cmd
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		f       quoteFlags
		steps   int
		amqpURL string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "simulate <origin> <destination>",
		Short: "Quote, assign and drive a shipment to delivery",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(args, true)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			q, err := a.svc.QuoteShipment(ctx, req)
			if err != nil {
				return err
			}

			var pub ports.TrackingPublisher = publisher.NewLogPublisher(level.Info(a.logger))
			if amqpURL != "" {
				rabbit, conn, err := publisher.Dial(amqpURL)
				if err != nil {
					return err
				}
				defer conn.Close()
				defer rabbit.Close()
				pub = publisher.Multi{pub, rabbit}
			}

			updates, err := services.NewTracker(a.svc, pub, a.ids, steps, a.logger).Run(ctx, q.Shipment.TrackingID)
			if err != nil {
				return err
			}
			shp, err := a.svc.Shipment(ctx, q.Shipment.TrackingID)
			if err != nil {
				return err
			}
			return a.print(struct {
				Quote    dto.QuoteResponse       `json:"quote"`
				Updates  []domain.TrackingUpdate `json:"updates"`
				Shipment dto.ShipmentResponse    `json:"shipment"`
			}{quoteResponse(q), updates, dto.NewShipmentResponse(shp)})
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&steps, "steps", 5, "ticks from departure to delivery")
	cmd.Flags().StringVar(&amqpURL, "amqp-url", "", "also publish tracking updates to this RabbitMQ broker")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "give up after this long")
	return cmd
}
