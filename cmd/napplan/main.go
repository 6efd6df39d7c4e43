// Command napplan prints today's nap schedule for a baby.
//
//	napplan -age 6 -wake 07:00
//	napplan -age 26 -unit weeks -wake 06:10 -now 11:40 -naps 45,30
//	napplan -in request.json -json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	_ "time/tzdata"

	"github.com/yanqian/nap-planner/internal/domain/napschedule"
	"github.com/yanqian/nap-planner/pkg/logger"
)

type options struct {
	input    string
	age      float64
	ageSet   bool
	unit     string
	wake     string
	now      string
	naps     string
	dst      string
	timezone string
	asJSON   bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "napplan: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	req, err := buildRequest(opts, stdin)
	if err != nil {
		return err
	}

	svc, err := napschedule.NewService(napschedule.Config{
		Timezone:      opts.timezone,
		AutoDetectDST: true,
	}, nil, logger.NewWithWriter(stderr, os.Getenv("LOG_LEVEL")))
	if err != nil {
		return err
	}

	resp, err := svc.Plan(ctx, req)
	if err != nil {
		return fmt.Errorf("schedule unavailable: %w", err)
	}

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	_, err = fmt.Fprintln(stdout, resp.Text)
	return err
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("napplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "in", "", "read a JSON request from this file (- for stdin)")
	fs.Func("age", "baby age in -unit", func(v string) error {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		opts.age, opts.ageSet = parsed, true
		return nil
	})
	fs.StringVar(&opts.unit, "unit", "months", "age unit: days, weeks, months or years")
	fs.StringVar(&opts.wake, "wake", "", "first wake today, HH:MM or RFC3339")
	fs.StringVar(&opts.now, "now", "", "current time, HH:MM or RFC3339 (default: now)")
	fs.StringVar(&opts.naps, "naps", "", "comma separated durations of naps already taken, in minutes")
	fs.StringVar(&opts.dst, "dst", "", "force the clock change flag (true/false); detected when empty")
	fs.StringVar(&opts.timezone, "tz", "", "IANA timezone (default: local)")
	fs.BoolVar(&opts.asJSON, "json", false, "print the full schedule as JSON")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func buildRequest(opts options, stdin io.Reader) (napschedule.Request, error) {
	var req napschedule.Request
	if opts.input != "" {
		var r io.Reader = stdin
		if opts.input != "-" {
			f, err := os.Open(opts.input)
			if err != nil {
				return req, err
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&req); err != nil {
			return req, fmt.Errorf("decode request: %w", err)
		}
	}

	if opts.ageSet {
		age := opts.age
		req.Age = napschedule.AgeInput{Value: &age, Unit: opts.unit}
	}
	if opts.wake != "" {
		req.FirstWake = opts.wake
	}
	if opts.now != "" {
		req.CurrentTime = opts.now
	}
	if opts.timezone != "" {
		req.Timezone = opts.timezone
	}
	if opts.naps != "" {
		naps, err := parseDurations(opts.naps)
		if err != nil {
			return req, err
		}
		req.NapDurations = naps
	}
	if opts.dst != "" {
		forced, err := strconv.ParseBool(opts.dst)
		if err != nil {
			return req, fmt.Errorf("-dst: %w", err)
		}
		req.DSTChange = &forced
	}

	if req.Age.Value == nil {
		return req, errors.New("age is required (-age or request file)")
	}
	if strings.TrimSpace(req.FirstWake) == "" {
		return req, errors.New("first wake time is required (-wake or request file)")
	}
	return req, nil
}

func parseDurations(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("nap duration %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
