package handlers

import (
	"time"

	"casamanduva.com/web/internal/motion"
	"casamanduva.com/web/internal/solutions"
)

// Stat is a headline figure.
type Stat struct {
	Value    string
	LabelKey string
	Label    string
	Delay    time.Duration
}

// HomeData is the view model for the home page.
type HomeData struct {
	Solutions []solutions.Solution
	Stats     []Stat
}

var defaultStats = []Stat{
	{Value: "500+", Label: "Projects Completed"},
	{Value: "15+", Label: "Years Experience"},
	{Value: "98%", Label: "Client Satisfaction"},
	{Value: "50+", Label: "Design Awards"},
}

// Stats returns the headline figures with their entry delays.
func Stats() []Stat {
	out := make([]Stat, len(defaultStats))
	for i, s := range defaultStats {
		s.Delay = motion.Stats.Delay(i)
		out[i] = s
	}
	return out
}

// BuildHomeData constructs the view model for the landing page.
func BuildHomeData(grid []solutions.Solution) HomeData {
	return HomeData{
		Solutions: grid,
		Stats:     Stats(),
	}
}
