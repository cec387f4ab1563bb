// Package render prints the fixed-width configuration table and the live
// status line of a lattice Boltzmann run.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lbm-sim/lbm-info/sim"
)

// Width is the number of columns of every table line.
const Width = 79

const (
	valueWidth = 57
	title      = "lattice Boltzmann solver run-time info"

	tableTop      = ".-----------------------------------------------------------------------------."
	tableSplit    = "|-----------------.-----------------------------------------------------------|"
	statusSplit   = "|---------.-------'-----.-----------.-------------------.---------------------|"
	statusFooter  = "|---------'-------------'-----------'-------------------'---------------------|"
	tableBottom   = "'-----------------'-----------------------------------------------------------'"
	statusColumns = "| MLUPs   | Bandwidth   | Steps/s   | Current Step      | "
)

// Options configures a Renderer.
type Options struct {
	Writer  io.Writer // defaults to os.Stdout
	NoColor bool
	Status  bool // print the status header and accept Update calls
}

// Renderer writes the configuration table and re-prints the status line in place.
type Renderer struct {
	w         io.Writer
	s         styles
	status    bool
	rendering bool // set between Initialize and Finalize
	infinite  bool
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	return &Renderer{
		w:      opts.Writer,
		s:      newStyles(newLipglossRenderer(opts)),
		status: opts.Status,
	}
}

func (r *Renderer) println(line string) {
	_, _ = fmt.Fprintln(r.w, line)
}

// row prints one "| key | value |" line of the configuration table.
func (r *Renderer) row(key, value string) {
	r.println(r.s.border.Render("| ") + r.s.key.Render(fmt.Sprintf("%-15s", key)) + r.s.border.Render(" | ") +
		alignRight(valueWidth, value) + r.s.border.Render(" |"))
}

// Initialize prints the title and the configuration table. When the renderer
// was created with Status it also prints the status header and enables Update.
func (r *Renderer) Initialize(d sim.Descriptor, fp sim.Footprint, targetSteps uint64) {
	r.infinite = targetSteps == sim.InfiniteSteps
	l, f, p := d.Lattice, d.Features, d.Physics

	r.println(r.s.border.Render(tableTop))
	r.println(r.s.border.Render("|") + r.s.title.Render(lipgloss.PlaceHorizontal(Width-2, lipgloss.Center, title)) + r.s.border.Render("|"))
	r.println(r.s.border.Render(tableSplit))
	r.row("Grid Resolution", l.Resolution())
	r.row("LBM Type", l.Label()+" "+f.TypeLabel())
	r.row("Memory Usage", fmt.Sprintf("CPU %d MB, GPU %d MB", fp.CPUMegabytesRequired, fp.GPUMegabytesRequired))
	r.row("Max Alloc Size", fmt.Sprintf("%d MB", fp.MaxAllocMegabytes))
	r.row("Time Steps", formatSteps(targetSteps))
	r.row("Kin. Viscosity", formatFixed(p.Nu, 8))
	r.row("Relaxation Time", formatFixed(p.Tau, 8))
	r.row("Reynolds Number", FormatReynolds(p.ReMax))
	if f.VolumeForce {
		r.row("Volume Force", alignRight(15, formatFixed(p.Fx, 8))+","+alignRight(15, formatFixed(p.Fy, 8))+","+alignRight(15, formatFixed(p.Fz, 8)))
	}
	if f.Surface {
		r.row("Surface Tension", formatFixed(p.Sigma, 8))
	}
	if f.Temperature {
		r.row("Thermal Diff.", formatFixed(p.Alpha, 8))
		r.row("Thermal Exp.", formatFixed(p.Beta, 8))
	}

	if !r.status {
		r.println(r.s.border.Render(tableBottom))
		return
	}
	r.println(r.s.border.Render(statusSplit))
	timeColumn := "Time Remaining"
	if r.infinite {
		timeColumn = "Elapsed Time  "
	}
	r.println(r.s.header.Render(statusColumns + timeColumn + "      |"))
	r.rendering = true
}

// StatusLine formats one status line without styling or carriage return.
func StatusLine(st sim.Status) string {
	var b strings.Builder
	b.WriteString("|")
	b.WriteString(alignRight(8, strconv.FormatUint(toUint(st.MLUPs), 10)))
	b.WriteString(" |")
	b.WriteString(alignRight(7, strconv.FormatUint(toUint(st.BandwidthGBs), 10)))
	b.WriteString(" GB/s |")
	b.WriteString(alignRight(10, strconv.FormatUint(toUint(st.StepsPerSec), 10)))
	b.WriteString(" | ")
	step := strconv.FormatUint(st.CurrentStep, 10)
	if st.Infinite() {
		b.WriteString(alignRight(17, step))
	} else {
		b.WriteString(alignRight(12, step) + " " + FormatPercentage(st.Fraction))
	}
	b.WriteString(" | ")
	b.WriteString(alignRight(19, FormatTime(st.Time, st.TimeKnown)))
	b.WriteString(" |")
	return b.String()
}

// Update re-prints the status line in place. No-op outside Initialize/Finalize.
func (r *Renderer) Update(st sim.Status) {
	if !r.rendering {
		return
	}
	_, _ = fmt.Fprint(r.w, "\r"+r.s.status.Render(StatusLine(st)))
}

// Finalize ends the live status line and closes the table.
func (r *Renderer) Finalize() {
	if !r.rendering {
		return
	}
	r.rendering = false
	r.println("")
	r.println(r.s.border.Render(statusFooter))
}

func formatSteps(steps uint64) string {
	if steps == sim.InfiniteSteps {
		return "infinite"
	}
	return strconv.FormatUint(steps, 10)
}
