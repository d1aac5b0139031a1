package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/employees"
	"github.com/csg33k/employee-directory/internal/format"
)

func newEmployeesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "Print the employee directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			list, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			return printEmployees(cmd.OutOrStdout(), list)
		},
	}
}

func newExportCmd(configPath *string) *cobra.Command {
	var kind, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the employee directory as PDF or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			exp, ok := a.exporters[strings.ToLower(kind)]
			if !ok {
				return fmt.Errorf("unknown format %q (want pdf or xlsx)", kind)
			}
			list, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = "employees." + exp.Extension()
			}
			if out == "-" {
				return exp.Export(cmd.Context(), list, cmd.OutOrStdout())
			}

			f, err := os.Create(filepath.Clean(out))
			if err != nil {
				return err
			}
			if err := exp.Export(cmd.Context(), list, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d employees (%s) to %s\n", len(list.Employees), list.Origin, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "format", "f", "pdf", "export format: pdf or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file, "-" for stdout (default employees.<format>)`)
	return cmd
}

func (a *app) load(ctx context.Context) (domain.EmployeeList, error) {
	st := a.page.Load(ctx)
	if st.Status != employees.StatusSuccess {
		return domain.EmployeeList{}, fmt.Errorf("loading employees: %w", st.Err)
	}
	return domain.EmployeeList{Employees: st.Employees, Origin: st.Origin}, nil
}

func printEmployees(w io.Writer, list domain.EmployeeList) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tJOB TITLE\tDEPARTMENT\tLOCATION\tSALARY\tHIRED")
	for _, e := range list.Employees {
		hired, err := format.FormatDate(e.HireDate)
		if err != nil {
			hired = e.HireDate
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.FullName(), e.JobTitle, e.Department, e.Location,
			format.FormatCurrency(e.Salary), hired)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d employees (%s data)\n", len(list.Employees), list.Origin)
	return err
}
