// Command ectiming times double-and-add against the Montgomery ladder for
// scalars of controlled Hamming weight and reports how much each method's
// running time depends on the weight.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/smallyu/go-ecbasics/internal/config"
	"github.com/smallyu/go-ecbasics/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecbasics/internal/log"
	"github.com/smallyu/go-ecbasics/internal/timing"
)

func main() {
	cfg, err := config.Load("ectiming", os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.SetGlobal(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.G.Error().Err(err).Msg("timing run failed")
		os.Exit(1)
	}
}

func newLogger(c config.Log) (*log.Logger, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := []log.Option{log.WithLevel(level)}
	if c.Format == "json" {
		opts = append(opts, log.WithJSON())
	}
	return log.New(opts...), nil
}

func run(ctx context.Context, cfg *config.Timing, out io.Writer) error {
	var params *weierstrass.Params
	switch cfg.Curve {
	case "secp256k1":
		params = weierstrass.Secp256k1()
	case "p256":
		params = weierstrass.P256()
	default:
		return fmt.Errorf("unknown curve %q", cfg.Curve)
	}

	methods := make([]weierstrass.Method, 0, len(cfg.Methods))
	for _, s := range cfg.Methods {
		m, err := weierstrass.ParseMethod(s)
		if err != nil {
			return err
		}
		methods = append(methods, m)
	}

	log.G.Info().
		Str("curve", params.Name).
		Int("bits", cfg.Bits).
		Ints("weights", cfg.Weights).
		Int("samples", cfg.Samples).
		Msg("starting timing run")

	report, err := timing.Run(ctx, timing.Options{
		Params:  params,
		Methods: methods,
		Weights: cfg.Weights,
		Bits:    cfg.Bits,
		Samples: cfg.Samples,
		Warmup:  cfg.Warmup,
	}, log.G.Logger)
	if err != nil {
		return err
	}
	return printReport(out, report, methods)
}

func printReport(out io.Writer, r *timing.Report, methods []weierstrass.Method) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "curve %s, %d-bit scalars\n\n", r.Curve, r.Bits)
	fmt.Fprintln(tw, "METHOD\tWEIGHT\tMEAN\tMIN\tMAX")
	for _, m := range r.Measurements {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", m.Method, m.Weight, m.Mean, m.Min, m.Max)
	}
	fmt.Fprintln(tw)
	for _, m := range methods {
		fmt.Fprintf(tw, "%s\thigh/low weight ratio %.3f\n", m, r.Ratio(m))
	}
	return tw.Flush()
}
