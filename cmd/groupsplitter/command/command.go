// Package command provides main command line interface
package command

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sourcegraph/conc/pool"
	"github.com/takuo/go-groupsplitter/internal/config"
	"github.com/takuo/go-groupsplitter/internal/templates"
	"github.com/takuo/go-groupsplitter/internal/types"
	"github.com/takuo/go-groupsplitter/pkg/grouping"
)

// repeatThreshold is the co-occurrence count from which a pair is reported
// as a repeat.
const repeatThreshold = 2

// CLI main command line interface
type CLI struct {
	Companies   []int  `arg:"" optional:"" help:"Participant count per company, in company order. Read from stdin when omitted."`
	Days        int    `short:"d" long:"days" default:"3" help:"Number of days to plan"`
	Groups      int    `short:"g" long:"groups" default:"5" help:"Number of groups per day"`
	Trials      int    `short:"t" long:"trials" default:"100" help:"Randomized trials per day"`
	Concurrency int    `short:"c" long:"concurrency" default:"1" help:"Number of concurrent trial workers"`
	Seed        int64  `short:"s" long:"seed" default:"0" help:"Random seed (0: derived from current time)"`
	Config      string `long:"config" help:"YAML file with companies/days/groups/seed/trials (file values win)"`
	Template    string `long:"template" help:"Path to the report template file (optional)"`
	OutputDir   string `short:"o" long:"output-dir" help:"Directory to write assignments.csv and cooccurrence.csv (optional)"`
	Matrix      bool   `short:"m" long:"matrix" help:"Print the co-occurrence matrix after the report"`

	Version kong.VersionFlag `short:"v" long:"version" help:"Print version and exit"`

	// Runtime context
	counts   []int                  `kong:"-"`
	roster   []grouping.Participant `kong:"-"`
	plan     *grouping.Plan         `kong:"-"`
	template string                 `kong:"-"`
}

// Run run the command line
func (c *CLI) Run() error {
	if err := c.collectInputs(); err != nil {
		return err
	}
	if err := c.validateInputs(); err != nil {
		return err
	}
	c.warnInputs()

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c.roster = grouping.BuildRoster(c.counts)
	log.Printf("Planning %d days of %d groups for %d participants (seed %d, trials %d)", c.Days, c.Groups, len(c.roster), seed, c.Trials)

	params := grouping.Params{Trials: c.Trials, Workers: c.Concurrency}
	plan, err := grouping.Generate(c.roster, c.Days, c.Groups, params, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}
	c.plan = plan

	// テンプレートファイルの読み込み（指定があれば）
	if err := c.loadTemplate(); err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}
	if err := c.renderReport(os.Stdout); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if c.Matrix {
		c.printMatrix(os.Stdout)
	}
	if c.OutputDir != "" {
		if err := c.writeCSVFiles(); err != nil {
			return fmt.Errorf("failed to write CSV files: %w", err)
		}
	}
	return nil
}

func (c *CLI) collectInputs() error {
	if c.Config != "" {
		cfg, err := config.Load(c.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		c.applyConfig(cfg)
	}
	if len(c.counts) == 0 {
		c.counts = c.Companies
	}
	if len(c.counts) == 0 {
		counts, err := readCounts(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read participant counts from stdin: %w", err)
		}
		log.Printf("Read %d company counts from stdin: %v", len(counts), counts)
		c.counts = counts
	}
	return nil
}

func (c *CLI) applyConfig(cfg *config.PlanConfig) {
	if len(cfg.Companies) > 0 {
		c.counts = cfg.Companies
	}
	if cfg.Days > 0 {
		c.Days = cfg.Days
	}
	if cfg.Groups > 0 {
		c.Groups = cfg.Groups
	}
	if cfg.Trials > 0 {
		c.Trials = cfg.Trials
	}
	if cfg.Seed != 0 {
		c.Seed = cfg.Seed
	}
}

func readCounts(r io.Reader) ([]int, error) {
	counts := []int{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid participant count %q", field)
			}
			counts = append(counts, n)
		}
	}
	return counts, scanner.Err()
}

func (c *CLI) validateInputs() error {
	if len(c.counts) == 0 {
		return errors.New("no participant counts given")
	}
	for i, n := range c.counts {
		if n < 1 {
			return fmt.Errorf("company %s has invalid participant count %d", grouping.CompanyLabel(i), n)
		}
	}
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1, got %d", c.Days)
	}
	if c.Groups < 1 {
		return fmt.Errorf("groups must be at least 1, got %d", c.Groups)
	}
	return nil
}

func (c *CLI) warnInputs() {
	total := 0
	for i, n := range c.counts {
		total += n
		if n > c.Groups {
			log.Printf("Warning: company %s has %d participants for %d groups, same-company grouping is unavoidable", grouping.CompanyLabel(i), n, c.Groups)
		}
	}
	if total%c.Groups != 0 {
		log.Printf("Warning: %d participants do not divide evenly into %d groups, group sizes will differ by one", total, c.Groups)
	}
}

func (c *CLI) loadTemplate() (err error) {
	if c.Template != "" {
		data, err := os.ReadFile(c.Template)
		if err != nil {
			return fmt.Errorf("failed to read template file: %w", err)
		}
		c.template = string(data)
	} else {
		c.template = templates.ReportTemplate()
	}
	return
}

func (c *CLI) buildTemplateData() types.TemplateData {
	companies := make([]types.CompanyLine, 0, len(c.counts))
	for i, n := range c.counts {
		companies = append(companies, types.CompanyLine{Label: grouping.CompanyLabel(i), Count: n})
	}

	days := make([]types.DayView, 0, len(c.plan.Days))
	for di, dayPlan := range c.plan.Days {
		day := types.DayView{Day: di + 1, Score: dayPlan.Score}
		for gi, g := range dayPlan.Groups {
			members := make([]string, 0, len(g.Members))
			for _, m := range g.Members {
				members = append(members, fmt.Sprintf("%d (%s)", m.ID, m.Company))
			}
			day.Groups = append(day.Groups, types.GroupView{
				Index:      gi + 1,
				Size:       len(g.Members),
				Members:    strings.Join(members, ", "),
				Duplicates: g.DuplicateSummary(),
			})
		}
		days = append(days, day)
	}

	repeats := []types.PairView{}
	matrix := c.plan.History.Matrix(len(c.roster))
	for i := range matrix {
		for j := i + 1; j < len(matrix); j++ {
			if matrix[i][j] >= repeatThreshold {
				repeats = append(repeats, types.PairView{A: i + 1, B: j + 1, Count: matrix[i][j]})
			}
		}
	}

	return types.TemplateData{
		Total:     len(c.roster),
		Companies: companies,
		Days:      days,
		Repeats:   repeats,
	}
}

func (c *CLI) renderReport(w io.Writer) error {
	tmpl, err := template.New("report").Parse(c.template)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl.Execute(w, c.buildTemplateData())
}

func (c *CLI) printMatrix(w io.Writer) {
	n := len(c.roster)
	matrix := c.plan.History.Matrix(n)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Co-occurrence matrix (* = %d or more shared days):\n", repeatThreshold)
	fmt.Fprintf(w, "%4s", "")
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%4d", i+1)
	}
	fmt.Fprintln(w)
	for i, row := range matrix {
		fmt.Fprintf(w, "%4d", i+1)
		for _, count := range row {
			cell := strconv.Itoa(count)
			if count >= repeatThreshold {
				cell += "*"
			}
			fmt.Fprintf(w, "%4s", cell)
		}
		fmt.Fprintln(w)
	}
}

func (c *CLI) writeCSVFiles() error {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	p := pool.New().WithErrors()
	p.Go(func() error {
		return c.writeAssignmentsCSV(filepath.Join(c.OutputDir, "assignments.csv"))
	})
	p.Go(func() error {
		return c.writeMatrixCSV(filepath.Join(c.OutputDir, "cooccurrence.csv"))
	})
	if err := p.Wait(); err != nil {
		return err
	}
	log.Printf("Wrote assignments.csv and cooccurrence.csv to %s", c.OutputDir)
	return nil
}

func (c *CLI) writeAssignmentsCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"day", "group", "participant", "company"}); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for di, dayPlan := range c.plan.Days {
		for gi, g := range dayPlan.Groups {
			for _, m := range g.Members {
				record := []string{
					strconv.Itoa(di + 1),
					strconv.Itoa(gi + 1),
					strconv.Itoa(m.ID),
					m.Company,
				}
				if err := w.Write(record); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
			}
		}
	}
	w.Flush()
	return w.Error()
}

func (c *CLI) writeMatrixCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	matrix := c.plan.History.Matrix(len(c.roster))
	w := csv.NewWriter(file)

	header := make([]string, 0, len(c.roster)+1)
	header = append(header, "id")
	for _, p := range c.roster {
		header = append(header, strconv.Itoa(p.ID))
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for i, row := range matrix {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.Itoa(i+1))
		for _, count := range row {
			record = append(record, strconv.Itoa(count))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}
