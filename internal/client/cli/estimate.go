package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/costestimator/internal/client/guard"
	"github.com/dmitrijs2005/costestimator/internal/client/models"
	"github.com/dmitrijs2005/costestimator/internal/common"
)

// Estimate walks through the estimate form. Blank answers keep the default
// or, for the optional overrides, let the engine derive the value.
func (a *App) Estimate(ctx context.Context) error {
	if !a.allow(ctx, guard.RequireUser) {
		return nil
	}

	in, closeFn, err := a.readEstimateInput()
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := a.estimates.Submit(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Estimate #%d saved.\n", res.ID)
	fmt.Fprintf(a.out, "Total cost:       %s\n", money(res.TotalCost))
	fmt.Fprintf(a.out, "Predicted (2026): %s\n", money(res.Predicted2026))
	if len(res.Breakdown) > 0 {
		return renderTable(a.out, []string{"Item", "Cost"}, breakdownRows(res.Breakdown))
	}
	return nil
}

func (a *App) readEstimateInput() (*models.EstimateInput, func(), error) {
	noop := func() {}
	in := models.NewEstimateInput()

	ask := func(prompt, def string) (string, error) {
		if def != "" {
			prompt = fmt.Sprintf("%s [%s]", prompt, def)
		}
		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return "", err
		}
		if v == "" {
			return def, nil
		}
		return v, nil
	}

	var err error
	if in.City, err = ask("City ("+strings.Join(models.Cities, ", ")+")", in.City); err != nil {
		return nil, noop, err
	}
	if in.Quality, err = ask("Quality ("+strings.Join(models.Qualities, ", ")+")", in.Quality); err != nil {
		return nil, noop, err
	}

	v, err := ask("Floors", strconv.Itoa(in.Floors))
	if err != nil {
		return nil, noop, err
	}
	if in.Floors, err = strconv.Atoi(v); err != nil {
		return nil, noop, fmt.Errorf("%w: floors %q", common.ErrInvalidInput, v)
	}

	v, err = ask("Carpet ratio", strconv.FormatFloat(in.CarpetRatio, 'f', -1, 64))
	if err != nil {
		return nil, noop, err
	}
	if in.CarpetRatio, err = strconv.ParseFloat(v, 64); err != nil {
		return nil, noop, fmt.Errorf("%w: carpet ratio %q", common.ErrInvalidInput, v)
	}

	v, err = ask("Commercial building? (y/N)", "")
	if err != nil {
		return nil, noop, err
	}
	in.IsCommercial = strings.EqualFold(v, "y") || strings.EqualFold(v, "yes")

	if in.AreaSqft, err = askFloat(ask, "Area in sqft (blank to derive)"); err != nil {
		return nil, noop, err
	}
	if in.Rooms, err = askInt(ask, "Rooms (blank to derive)"); err != nil {
		return nil, noop, err
	}
	if in.WallLength, err = askFloat(ask, "Wall length (blank to derive)"); err != nil {
		return nil, noop, err
	}

	path, err := ask("Blueprint image path (blank for none)", "")
	if err != nil {
		return nil, noop, err
	}
	if path == "" {
		return in, noop, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, noop, fmt.Errorf("open blueprint: %w", err)
	}
	in.Blueprint = f
	in.BlueprintName = filepath.Base(path)
	return in, func() { _ = f.Close() }, nil
}

type askFn func(prompt, def string) (string, error)

func askFloat(ask askFn, prompt string) (*float64, error) {
	v, err := ask(prompt, "")
	if err != nil || v == "" {
		return nil, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", common.ErrInvalidInput, v)
	}
	return &f, nil
}

func askInt(ask askFn, prompt string) (*int, error) {
	v, err := ask(prompt, "")
	if err != nil || v == "" {
		return nil, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a whole number", common.ErrInvalidInput, v)
	}
	return &n, nil
}
