package handler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"markbook/internal/chart"
	"markbook/internal/model"
	"markbook/internal/service"
)

// Console drives the interactive session: menu loop, prompts with retry and
// the tabular results display. It owns no data; the dataset is passed in and
// mutated only through the record service.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	records *service.RecordService
	stats   *service.StatsService
	charts  *chart.Renderer

	header *color.Color
	ok     *color.Color
	warn   *color.Color
	fail   *color.Color
}

func NewConsole(in io.Reader, out io.Writer, records *service.RecordService, stats *service.StatsService, charts *chart.Renderer) *Console {
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		records: records,
		stats:   stats,
		charts:  charts,
		header:  color.New(color.FgHiMagenta, color.Bold),
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
	}
}

// Run loops over the menu until the user exits or input runs out.
func (c *Console) Run(ds *model.Dataset) {
	for {
		c.header.Fprintln(c.out, "\n--- Student Performance Analysis ---")
		fmt.Fprintln(c.out, "1. Add new student record")
		fmt.Fprintln(c.out, "2. Display results")
		fmt.Fprintln(c.out, "3. Analyze trend")
		fmt.Fprintln(c.out, "4. Subject comparison")
		fmt.Fprintln(c.out, "5. Exit")

		choice, ok := c.readLine("Enter your choice (1-5): ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			c.AddRecord(ds)
		case "2":
			c.DisplayResults(ds)
		case "3":
			c.AnalyzeTrend(ds)
		case "4":
			c.SubjectComparison(ds)
		case "5":
			color.New(color.Bold).Fprintln(c.out, "Thank you for using the Student Performance Analysis Program. Goodbye!")
			return
		default:
			c.fail.Fprintln(c.out, "Invalid choice. Please try again.")
		}
	}
}

// AddRecord collects a name and one mark per subject, re-prompting each field
// until it is a valid integer in range, then hands the complete row to the
// record service.
func (c *Console) AddRecord(ds *model.Dataset) {
	c.header.Fprintln(c.out, "\nAdding a new student record")
	name, ok := c.readLine("Enter student name: ")
	if !ok {
		return
	}

	marks := make([]int, 0, len(ds.Subjects))
	for _, subject := range ds.Subjects {
		v, ok := c.promptMark(subject)
		if !ok {
			return
		}
		marks = append(marks, v)
	}

	if err := c.records.Add(ds, name, marks); err != nil {
		c.fail.Fprintf(c.out, "Could not save record: %v\n", err)
		return
	}
	c.ok.Fprintln(c.out, "Record added successfully.")
}

// DisplayResults prints the marks table with a per-student average column.
func (c *Console) DisplayResults(ds *model.Dataset) {
	if len(ds.Students) == 0 {
		c.warn.Fprintln(c.out, "No data available.")
		return
	}
	c.header.Fprintln(c.out, "\nStudent Results:")

	avgs := c.stats.PerStudentAverages(ds.Marks)
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Student Name\t%s\tAverage\n", strings.Join(ds.Subjects, "\t"))
	for i, student := range ds.Students {
		cells := make([]string, 0, len(ds.Subjects))
		for _, v := range ds.Marks[i] {
			cells = append(cells, strconv.Itoa(v))
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", student, strings.Join(cells, "\t"), avgs[i])
	}
	w.Flush()
}

// AnalyzeTrend renders the per-subject trend line chart.
func (c *Console) AnalyzeTrend(ds *model.Dataset) {
	if len(ds.Students) < 2 {
		c.warn.Fprintln(c.out, "Not enough data to analyze trends.")
		return
	}
	path, err := c.charts.Trend(ds.Subjects, ds.Students, ds.Marks)
	if err != nil {
		c.fail.Fprintf(c.out, "Could not render trend chart: %v\n", err)
		return
	}
	c.ok.Fprintf(c.out, "Trend chart saved to %s\n", path)
}

// SubjectComparison renders the subject-average bar chart.
func (c *Console) SubjectComparison(ds *model.Dataset) {
	if len(ds.Marks) == 0 {
		c.warn.Fprintln(c.out, "No data available for comparison.")
		return
	}
	avgs := c.stats.PerSubjectAverages(ds.Subjects, ds.Marks)
	path, err := c.charts.SubjectComparison(ds.Subjects, avgs)
	if err != nil {
		c.fail.Fprintf(c.out, "Could not render comparison chart: %v\n", err)
		return
	}
	c.ok.Fprintf(c.out, "Subject comparison chart saved to %s\n", path)
}

// promptMark keeps asking for a subject's mark until it is an integer within
// range. The second return is false only when input is exhausted.
func (c *Console) promptMark(subject string) (int, bool) {
	for {
		line, ok := c.readLine(fmt.Sprintf("Enter mark for %s (%d-%d): ", subject, model.MinMark, model.MaxMark))
		if !ok {
			return 0, false
		}
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			c.fail.Fprintln(c.out, "Please enter a valid integer.")
			continue
		}
		if err := service.ValidateMark(v); err != nil {
			c.fail.Fprintf(c.out, "Mark should be between %d and %d.\n", model.MinMark, model.MaxMark)
			continue
		}
		return v, true
	}
}

func (c *Console) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
