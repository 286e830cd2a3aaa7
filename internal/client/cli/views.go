package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/dmitrijs2005/costestimator/internal/client/guard"
)

func (a *App) Dashboard(ctx context.Context) error {
	if !a.allow(ctx, guard.RequireUser) {
		return nil
	}
	return a.showDashboard(ctx)
}

// showDashboard renders the dashboard without consulting the guard; callers
// have already done so.
func (a *App) showDashboard(ctx context.Context) error {
	d, err := a.estimates.Dashboard(ctx)
	if err != nil {
		return err
	}
	if len(d.Estimations) == 0 {
		fmt.Fprintln(a.out, "No estimations yet. Use 'estimate' to create one.")
		return nil
	}

	rows := make([][]string, 0, len(d.Estimations))
	for _, e := range d.Estimations {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			e.City,
			money(e.TotalCost),
			money(e.Predicted2026),
		})
	}
	if err := renderTable(a.out, []string{"ID", "Date", "City", "Total cost", "Predicted 2026"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d estimations, total value %s\n", d.Count, money(d.TotalValue))
	return nil
}

// Result shows one stored estimation: result <id>.
func (a *App) Result(ctx context.Context, args []string) error {
	if !a.allow(ctx, guard.RequireUser) {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: result <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: result <id>")
		return nil
	}

	r, err := a.estimates.Result(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Estimate #%d (%s)\n", id, r.Date)
	fmt.Fprintf(a.out, "Total cost:       %s\n", money(r.TotalCost))
	fmt.Fprintf(a.out, "Predicted (2026): %s\n", money(r.Predicted2026))
	if len(r.Breakdown) == 0 {
		return nil
	}
	return renderTable(a.out, []string{"Item", "Cost"}, breakdownRows(r.Breakdown))
}

func (a *App) Admin(ctx context.Context) error {
	if !a.allow(ctx, guard.RequireAdmin) {
		return nil
	}

	st, err := a.admin.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Users: %d  Predictions: %d  Estimations: %d\n", st.TotalUsers, st.TotalPredictions, st.TotalEstimations)

	users, err := a.admin.Users(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		role := "user"
		if u.IsAdmin {
			role = "admin"
		}
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.Username, u.Email, role})
	}
	return renderTable(a.out, []string{"ID", "Username", "Email", "Role"}, rows)
}

func breakdownRows(b map[string]float64) [][]string {
	rows := make([][]string, 0, len(b))
	for _, k := range slices.Sorted(maps.Keys(b)) {
		rows = append(rows, []string{k, money(b[k])})
	}
	return rows
}

func money(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', 2, 64)
}
