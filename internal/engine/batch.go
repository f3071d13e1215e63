package engine

import (
	"errors"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"salvo/internal/board"
	"salvo/internal/util"
)

type BatchSummary struct {
	Runs          int            `json:"runs"`
	Wins          int            `json:"wins"`
	Failures      int            `json:"failures"`
	RepeatedShots int            `json:"repeated_shots"`
	AvgShots      float64        `json:"avg_shots"`
	MinShots      int            `json:"min_shots"`
	MaxShots      int            `json:"max_shots"`
	HitRate       float64        `json:"hit_rate"`
	ShotsByMode   map[string]int `json:"shots_by_mode"`
	Histogram     map[int]int    `json:"shots_histogram"`
	Errors        []string       `json:"errors,omitempty"`
}

// RunBatch plays n independent games on a pool of workers. Every game gets
// its own RNG derived from seed, so results depend only on seed and n.
func RunBatch(seed int64, n, workers int, defs []board.TargetDef, cfg SimConfig, log *logrus.Logger) BatchSummary {
	if workers <= 0 {
		workers = 8
	}
	sum := BatchSummary{
		Runs:        n,
		MinShots:    math.MaxInt,
		ShotsByMode: map[string]int{},
		Histogram:   map[int]int{},
	}
	var totalShots, totalHits int
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				env := &Env{Rng: util.New(util.SeedFor(seed, i)), Log: log}
				res, err := RunSingle(env, defs, cfg, false)

				mu.Lock()
				if err != nil {
					sum.Failures++
					if errors.Is(err, ErrRepeatedShot) {
						sum.RepeatedShots++
					}
					if len(sum.Errors) < 10 {
						sum.Errors = append(sum.Errors, err.Error())
					}
					mu.Unlock()
					continue
				}
				if res.Win {
					sum.Wins++
				}
				totalShots += res.Shots
				totalHits += res.Hits
				sum.MinShots = min(sum.MinShots, res.Shots)
				sum.MaxShots = max(sum.MaxShots, res.Shots)
				sum.Histogram[res.Shots]++
				for k, v := range res.ShotsByMode {
					sum.ShotsByMode[k] += v
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	played := n - sum.Failures
	if played > 0 {
		sum.AvgShots = float64(totalShots) / float64(played)
	}
	if totalShots > 0 {
		sum.HitRate = float64(totalHits) / float64(totalShots)
	}
	if sum.MinShots == math.MaxInt {
		sum.MinShots = 0
	}
	return sum
}
