// Command riskprep runs the admission-risk data preparation pipeline over a
// raw EHR extract and writes the analysis-ready dataset.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/admitrisk/riskprep-go/pkg/config"
	"github.com/admitrisk/riskprep-go/pkg/export"
	"github.com/admitrisk/riskprep-go/pkg/pipeline"
	"github.com/admitrisk/riskprep-go/pkg/profile"
	"github.com/admitrisk/riskprep-go/utils"
)

var (
	configPath string
	inputPath  string
	outputPath string
	showReport bool
)

var rootCmd = &cobra.Command{
	Use:   "riskprep",
	Short: "Prepare raw EHR extracts for admission-risk modeling",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full preparation pipeline over a raw CSV extract",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, svc, err := initService()
		if err != nil {
			return err
		}

		res, err := svc.RunFile(inputPath)
		if err != nil {
			return fmt.Errorf("pipeline run failed: %w", err)
		}

		if outputPath != "" {
			if err := export.WriteCSVFile(outputPath, res.Table); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		if showReport {
			printStageReport(res)
			printSpec(res)
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Run the pipeline and print per-column summaries of the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, svc, err := initService()
		if err != nil {
			return err
		}

		res, err := svc.RunFile(inputPath)
		if err != nil {
			return fmt.Errorf("pipeline run failed: %w", err)
		}
		printProfile(profile.Summarize(res.Table, cfg.Assemble.TargetColumn))
		return nil
	},
}

func initService() (*config.Config, *pipeline.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	utils.InitLogger(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, pipeline.NewService(cfg), nil
}

func printStageReport(res *pipeline.Result) {
	fmt.Printf("run %s\n", res.RunID)
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"Stage", "Rows", "Cols", "Duration"})
	for _, st := range res.Stages {
		tw.Append([]string{
			st.Name,
			strconv.Itoa(st.Rows),
			strconv.Itoa(st.Cols),
			st.Duration.String(),
		})
	}
	tw.Render()
}

func printSpec(res *pipeline.Result) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"Step", "Role"})
	for _, step := range res.Spec.Steps {
		tw.Append([]string{string(step.Op), string(step.Role)})
	}
	tw.Render()
}

func printProfile(summaries []profile.ColumnSummary) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"Column", "Role", "Missing", "Distinct", "Mean", "Median", "StdDev", "ZeroVar"})
	for _, s := range summaries {
		mean, median, sd := "", "", ""
		if s.Role == "numeric" {
			mean = strconv.FormatFloat(s.Mean, 'f', 3, 64)
			median = strconv.FormatFloat(s.Median, 'f', 3, 64)
			sd = strconv.FormatFloat(s.StdDev, 'f', 3, 64)
		}
		tw.Append([]string{
			s.Name, s.Role,
			strconv.Itoa(s.Missing),
			strconv.Itoa(s.Distinct),
			mean, median, sd,
			strconv.FormatBool(s.ZeroVariance),
		})
	}
	tw.Render()
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(profileCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config overriding the defaults")
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "Path to the raw CSV extract")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path for the analysis-ready CSV")
	runCmd.Flags().BoolVar(&showReport, "report", false, "Print the per-stage report and preprocessing steps")
	rootCmd.MarkPersistentFlagRequired("input")
}
