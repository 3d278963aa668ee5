package record

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// pct returns x as a percentage of y to two decimal places, or zero when y
// isn't positive.
func pct(x, y int) float64 {
	if y <= 0 {
		return 0
	}
	return float64(int(10000*float64(x)/float64(y))) / 100
}

// Print renders a snapshot of the current counters. When clear is set the
// terminal is reset first, so repeated snapshots behave like a live
// dashboard; the underlying totals are never touched.
func (r *Record) Print(clear bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if clear {
		termenv.NewOutput(r.out).ClearScreen()
	}

	var b strings.Builder
	elapsed := time.Since(r.start)

	t := time.Unix(int64(elapsed.Seconds()), 0).UTC()
	runtime := fmt.Sprintf("%dd %02d:%02d:%02d",
		int(elapsed.Hours())/24, t.Hour(), t.Minute(), t.Second())

	fmt.Fprintln(&b, headerStyle.Render(fmt.Sprintf(
		"Leuchre Stats ( %s )   Team 1: %s   Team 2: %s", runtime, r.team1, r.team2)))
	fmt.Fprintln(&b)

	gps := 0.0
	hps := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		gps = float64(r.games) / secs
		hps = float64(r.hands) / secs
	}
	hpg := 0.0
	if r.games > 0 {
		hpg = float64(r.hands) / float64(r.games)
	}
	avgReps := 0.0
	if len(r.chand) > 0 {
		avgReps = float64(r.ccount) / float64(len(r.chand))
	}

	fmt.Fprintln(&b, "Games")
	fmt.Fprintf(&b, "Total:   %6d\n", r.games)
	fmt.Fprintf(&b, "Games/s:    %6.2f\n", gps)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Hands                  Makes")
	fmt.Fprintf(&b, "Total:   %6d        %%by team:   %6.2f / %5.2f\n",
		r.hands, pct(r.makers.Team[0], r.hands), pct(r.makers.Team[1], r.hands))
	fmt.Fprintf(&b, "Hands/s:    %6.2f     %%by player: %6.2f /%6.2f /%6.2f /%6.2f\n",
		hps,
		pct(r.makers.Player[0], r.hands), pct(r.makers.Player[1], r.hands),
		pct(r.makers.Player[2], r.hands), pct(r.makers.Player[3], r.hands))
	fmt.Fprintf(&b, "Hands/g:    %6.2f     %%by pos t1: %6.2f / %5.2f / %5.2f / %5.2f\n",
		hpg,
		pct(r.makers.TeamPos[0][0], r.makers.Team[0]),
		pct(r.makers.TeamPos[0][1], r.makers.Team[0]),
		pct(r.makers.TeamPos[0][2], r.makers.Team[0]),
		pct(r.makers.TeamPos[0][3], r.makers.Team[0]))
	fmt.Fprintf(&b, "Unique:  %6d                t2: %6.2f / %5.2f / %5.2f / %5.2f\n",
		len(r.chand),
		pct(r.makers.TeamPos[1][0], r.makers.Team[1]),
		pct(r.makers.TeamPos[1][1], r.makers.Team[1]),
		pct(r.makers.TeamPos[1][2], r.makers.Team[1]),
		pct(r.makers.TeamPos[1][3], r.makers.Team[1]))
	fmt.Fprintf(&b, "%%cover:     %6.2f     Euchres\n", 100*float64(len(r.chand))/uniqueHands)
	fmt.Fprintf(&b, "Max Reps: %5d        %%euchred:  %7.2f\n", r.cmax, pct(r.euchres, r.hands))
	fmt.Fprintf(&b, "Avg Reps:   %6.2f     %%by team:  %7.2f / %5.2f\n",
		avgReps,
		pct(r.euchreTally.Team[0], r.makers.Team[0]),
		pct(r.euchreTally.Team[1], r.makers.Team[1]))
	fmt.Fprintf(&b, "                       %%by player: %6.2f /%6.2f /%6.2f /%6.2f\n",
		pct(r.euchreTally.Player[0], r.makers.Player[0]),
		pct(r.euchreTally.Player[1], r.makers.Player[1]),
		pct(r.euchreTally.Player[2], r.makers.Player[2]),
		pct(r.euchreTally.Player[3], r.makers.Player[3]))
	fmt.Fprintf(&b, "                       %%by pos t1: %6.2f /%6.2f /%6.2f /%6.2f\n",
		pct(r.euchreTally.TeamPos[0][0], r.makers.TeamPos[0][0]),
		pct(r.euchreTally.TeamPos[0][1], r.makers.TeamPos[0][1]),
		pct(r.euchreTally.TeamPos[0][2], r.makers.TeamPos[0][2]),
		pct(r.euchreTally.TeamPos[0][3], r.makers.TeamPos[0][3]))
	fmt.Fprintf(&b, "                               t2: %6.2f /%6.2f /%6.2f /%6.2f\n",
		pct(r.euchreTally.TeamPos[1][0], r.makers.TeamPos[1][0]),
		pct(r.euchreTally.TeamPos[1][1], r.makers.TeamPos[1][1]),
		pct(r.euchreTally.TeamPos[1][2], r.makers.TeamPos[1][2]),
		pct(r.euchreTally.TeamPos[1][3], r.makers.TeamPos[1][3]))
	fmt.Fprintf(&b, "                       %%by hole t1: %5.2f /%6.2f /%6.2f /%6.2f /%6.2f /%6.2f\n",
		pct(r.holeEuchres[0][0], r.orderers.Team[0]),
		pct(r.holeEuchres[0][1], r.orderers.Team[0]),
		pct(r.holeEuchres[0][2], r.orderers.Team[0]),
		pct(r.holeEuchres[0][3], r.orderers.Team[0]),
		pct(r.holeEuchres[0][4], r.orderers.Team[0]),
		pct(r.holeEuchres[0][5], r.orderers.Team[0]))
	fmt.Fprintf(&b, "                                t2: %5.2f /%6.2f /%6.2f /%6.2f /%6.2f /%6.2f\n",
		pct(r.holeEuchres[1][0], r.orderers.Team[1]),
		pct(r.holeEuchres[1][1], r.orderers.Team[1]),
		pct(r.holeEuchres[1][2], r.orderers.Team[1]),
		pct(r.holeEuchres[1][3], r.orderers.Team[1]),
		pct(r.holeEuchres[1][4], r.orderers.Team[1]),
		pct(r.holeEuchres[1][5], r.orderers.Team[1]))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Follow Ratio (by trick)")
	ratios := make([]string, 0, 5)
	for trick := 1; trick <= 5; trick++ {
		ratios = append(ratios, fmt.Sprintf("%4.2f", r.followAvg(trick)))
	}
	fmt.Fprintln(&b, strings.Join(ratios, " / "))

	fmt.Fprint(r.out, b.String())
	r.maybeWriteLocked()
}

// followAvg returns the average playable ratio for a trick. Callers must
// hold the lock.
func (r *Record) followAvg(trick int) float64 {
	f := r.follow[trick]
	if f.Count == 0 {
		return 0
	}
	return f.Sum / float64(f.Count)
}
