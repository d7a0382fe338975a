package service

import "github.com/prometheus/client_golang/prometheus"

var (
	gamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mines_games_started_total",
			Help: "Total games started, by placement",
		},
		[]string{"placement"}, // "solo" or "room"
	)
	cellsRevealed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mines_cells_revealed_total",
			Help: "Total safe cells revealed",
		},
	)
	minesHit = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mines_hit_total",
			Help: "Total reveals that hit a mine",
		},
	)
	cashouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mines_cashouts_total",
			Help: "Total successful cashouts",
		},
	)
	roomsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mines_rooms_created_total",
			Help: "Total rooms created",
		},
	)
	roomsClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mines_rooms_closed_total",
			Help: "Total rooms closed by timer or explicit close",
		},
	)
)

func init() {
	prometheus.MustRegister(gamesStarted)
	prometheus.MustRegister(cellsRevealed)
	prometheus.MustRegister(minesHit)
	prometheus.MustRegister(cashouts)
	prometheus.MustRegister(roomsCreated)
	prometheus.MustRegister(roomsClosed)
}
