package engine

import (
	"encoding/json"
	"testing"

	"salvo/internal/util"
)

func testSimConfig(s Strategy) SimConfig {
	return SimConfig{
		GridSize:    10,
		Placement:   s,
		MaxAttempts: DefaultMaxAttempts,
		Hunt:        DefaultHuntConfig(),
	}
}

func TestRunSingleSinksEveryTarget(t *testing.T) {
	for _, s := range []Strategy{Uniform, Weighted} {
		t.Run(s.String(), func(t *testing.T) {
			for seed := int64(1); seed <= 40; seed++ {
				env := &Env{Rng: util.New(seed)}
				res, err := RunSingle(env, standardDefs(), testSimConfig(s), true)
				if err != nil {
					t.Fatalf("seed %d: %v", seed, err)
				}
				if !res.Win {
					t.Fatalf("seed %d: game not won after %d shots", seed, res.Shots)
				}
				if res.Shots > 100 || res.Hits != 17 || res.Hits+res.Misses != res.Shots {
					t.Fatalf("seed %d: shots=%d hits=%d misses=%d", seed, res.Shots, res.Hits, res.Misses)
				}
				if len(res.EliminatedAt) != 5 {
					t.Fatalf("seed %d: eliminated %v", seed, res.EliminatedAt)
				}

				shot := map[string]bool{}
				for _, ev := range res.Events {
					if ev.Type == EventShot {
						shot[ev.Payload["at"].(string)] = true
					}
				}
				if len(shot) != res.Shots {
					t.Fatalf("seed %d: %d distinct shots logged, %d taken", seed, len(shot), res.Shots)
				}
				for _, tm := range res.Meta.Targets {
					for _, c := range tm.Cells {
						if !shot[c.String()] {
							t.Fatalf("seed %d: %s cell %v never attacked", seed, tm.Name, c)
						}
					}
				}

				byMode := 0
				for _, v := range res.ShotsByMode {
					byMode += v
				}
				if byMode != res.Shots {
					t.Fatalf("seed %d: shots by mode %v do not add to %d", seed, res.ShotsByMode, res.Shots)
				}
			}
		})
	}
}

func TestRunSingleEventLog(t *testing.T) {
	res, err := RunSingle(&Env{Rng: util.New(7)}, standardDefs(), testSimConfig(Weighted), true)
	if err != nil {
		t.Fatalf("RunSingle: %v", err)
	}
	counts := map[string]int{}
	for _, ev := range res.Events {
		counts[ev.Type]++
	}
	want := map[string]int{
		EventPlace:      5,
		EventShot:       res.Shots,
		EventHit:        17,
		EventMiss:       res.Misses,
		EventEliminated: 5,
		EventGameOver:   1,
		EventLogLine:    17,
	}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("%s events = %d, want %d", k, counts[k], v)
		}
	}
	if last := res.Events[len(res.Events)-1]; last.Type != EventGameOver {
		t.Fatalf("last event = %s, want %s", last.Type, EventGameOver)
	}

	var back map[string]any
	if err := json.Unmarshal(MarshalPretty(res), &back); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if back["game_id"] != res.GameID || back["win"] != true {
		t.Fatalf("decoded result: game_id=%v win=%v", back["game_id"], back["win"])
	}
}

func TestRunSingleWithoutRecording(t *testing.T) {
	res, err := RunSingle(&Env{Rng: util.New(3)}, standardDefs(), testSimConfig(Uniform), false)
	if err != nil {
		t.Fatalf("RunSingle: %v", err)
	}
	if len(res.Events) != 0 {
		t.Fatalf("events recorded with record=false: %d", len(res.Events))
	}
	if res.Placement == "" {
		t.Fatalf("placement dump missing")
	}
}

func TestRunSinglePlacementFailure(t *testing.T) {
	cfg := testSimConfig(Uniform)
	cfg.GridSize = 4
	if _, err := RunSingle(&Env{Rng: util.New(1)}, standardDefs(), cfg, false); err == nil {
		t.Fatalf("expected placement failure on a 4x4 grid")
	}
}

func TestRunBatchNeverRepeatsAShot(t *testing.T) {
	n := 10000
	if testing.Short() {
		n = 300
	}
	sum := RunBatch(11, n, 0, standardDefs(), testSimConfig(Weighted), nil)
	if sum.RepeatedShots != 0 || sum.Failures != 0 {
		t.Fatalf("repeated=%d failures=%d errors=%v", sum.RepeatedShots, sum.Failures, sum.Errors)
	}
	if sum.Wins != n {
		t.Fatalf("wins = %d, want %d", sum.Wins, n)
	}
	if sum.MinShots < 17 || sum.MaxShots > 100 || sum.AvgShots < float64(sum.MinShots) || sum.AvgShots > float64(sum.MaxShots) {
		t.Fatalf("shot stats min=%d avg=%.2f max=%d", sum.MinShots, sum.AvgShots, sum.MaxShots)
	}
	games := 0
	for _, v := range sum.Histogram {
		games += v
	}
	if games != n {
		t.Fatalf("histogram counts %d games, want %d", games, n)
	}
}

func TestRunBatchDeterministic(t *testing.T) {
	a := RunBatch(5, 50, 4, standardDefs(), testSimConfig(Uniform), nil)
	b := RunBatch(5, 50, 1, standardDefs(), testSimConfig(Uniform), nil)
	if a.AvgShots != b.AvgShots || a.MinShots != b.MinShots || a.MaxShots != b.MaxShots {
		t.Fatalf("same seed, different results: %+v vs %+v", a, b)
	}
}
