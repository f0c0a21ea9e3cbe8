package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smartpay/backend/export"
	"smartpay/backend/listview"
	"smartpay/backend/render"
	"smartpay/backend/services"
)

type viewFlags struct {
	view    string
	uid     string
	filters map[string]string
	sort    string
	dir     string
	page    int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.view, "view", "admin", "list view (admin or resident)")
	cmd.Flags().StringVar(&f.uid, "uid", "", "resident user ID (resident view)")
	cmd.Flags().StringToStringVar(&f.filters, "filter", nil, "field=pattern filters, e.g. --filter name=budi")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort field")
	cmd.Flags().StringVar(&f.dir, "dir", "asc", "sort direction (asc or desc)")
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
}

func (f *viewFlags) resolve() (listview.View, services.ViewQuery, error) {
	var view listview.View
	switch f.view {
	case "admin":
		view = listview.Admin
	case "resident":
		if f.uid == "" {
			return view, services.ViewQuery{}, errors.New("--uid is required for the resident view")
		}
		view = listview.Resident
	default:
		return view, services.ViewQuery{}, fmt.Errorf("unknown view %q", f.view)
	}

	criteria := listview.Criteria{}
	for name, pattern := range f.filters {
		field := listview.ParseField(name)
		if field == listview.FieldNone {
			return view, services.ViewQuery{}, fmt.Errorf("unknown filter field %q", name)
		}
		criteria[field] = pattern
	}

	q := services.ViewQuery{
		Filters: view.Restrict(criteria),
		Sort:    view.SortOrNone(listview.SortSpec{Field: listview.ParseField(f.sort), Direction: listview.ParseDirection(f.dir)}),
		Page:    f.page,
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return view, q, nil
}

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Inspect and export payment records",
	}
	cmd.AddCommand(paymentsListCmd())
	cmd.AddCommand(paymentsExportCmd())
	return cmd
}

func paymentsListCmd() *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of a payment list view",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, q, err := flags.resolve()
			if err != nil {
				return err
			}
			res, err := computeView(cmd, view, flags.uid, q)
			if err != nil {
				return err
			}
			return render.Table(cmd.OutOrStdout(), view, res, q.Sort)
		},
	}
	flags.register(cmd)
	return cmd
}

func paymentsExportCmd() *cobra.Command {
	var flags viewFlags
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the visible page of a payment list view to an xlsx file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, q, err := flags.resolve()
			if err != nil {
				return err
			}
			res, err := computeView(cmd, view, flags.uid, q)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := export.Write(f, view, res.Rows); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(res.Rows), output)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", export.FileName, "output file")
	return cmd
}

func computeView(cmd *cobra.Command, view listview.View, uid string, q services.ViewQuery) (listview.Result, error) {
	a := newApp(cfg, logger)
	defer a.Close()

	rs, err := a.recordStore(cmd.Context())
	if err != nil {
		return listview.Result{}, err
	}
	payments := services.NewPaymentService(rs, logger)
	if view.Name == listview.Resident.Name {
		return payments.ResidentView(cmd.Context(), uid, q), nil
	}
	return payments.AdminView(cmd.Context(), q), nil
}
