// Package main provides a headless shield timeline verification tool.
//
// It drives ShieldSystem with a fixed time step and prints the state,
// state time and visual scale of every frame, so timing and scale
// parameters can be checked without opening a window.
//
// Usage:
//
//	go run ./cmd/verify_shield [flags]
//
// Flags:
//
//	--config <path>   Shield config file (default: built-in defaults)
//	--dt <seconds>    Fixed time step (default: 1/60)
//	--every <n>       Print every n-th frame; transitions are always printed (default: 6)
//	--verbose         Enable verbose logging
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/decker502/tcgame/pkg/components"
	"github.com/decker502/tcgame/pkg/config"
	"github.com/decker502/tcgame/pkg/ecs"
	"github.com/decker502/tcgame/pkg/systems"
)

var (
	configFlag  = flag.String("config", "", "Shield config file")
	dtFlag      = flag.Float64("dt", config.FixedDeltaTime, "Fixed time step in seconds")
	everyFlag   = flag.Int("every", 6, "Print every n-th frame")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// timelineScene 记录护盾实体的创建、销毁和缩放，不做任何绘制
type timelineScene struct {
	em      *ecs.EntityManager
	scale   float64
	created int
	alive   bool
}

func (s *timelineScene) CreateShieldVisual(owner ecs.EntityID) ecs.EntityID {
	s.created++
	s.alive = true
	return s.em.CreateNamedEntity("Shield Actor")
}

func (s *timelineScene) DestroyShieldVisual(visual ecs.EntityID) {
	s.alive = false
	s.em.DestroyEntity(visual)
}

func (s *timelineScene) SetShieldVisualScale(visual ecs.EntityID, scale float64) {
	s.scale = scale
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultShieldConfig()
	if *configFlag != "" {
		loaded, err := config.LoadShieldConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if _, err := runTimeline(os.Stdout, cfg, *dtFlag, *everyFlag); err != nil {
		fmt.Printf("FAIL: %v\n", err)
		os.Exit(1)
	}
}

// maxTimelineFrames 一次完整周期允许的最大帧数
// 每个状态至少消耗一帧，步长大于状态时长时也能走完三次切换
func maxTimelineFrames(cfg *config.ShieldConfig, dt float64) int {
	return int(math.Ceil(cfg.TotalDuration()/dt))*2 + 3
}

// runTimeline 以固定步长驱动一个护盾走完完整周期并把时间线写入 w
//
// 返回:
//   - int: 实际消耗的帧数
//   - error: 参数无效，或周期结束后护盾仍处于激活状态/护盾实体未销毁
func runTimeline(w io.Writer, cfg *config.ShieldConfig, dt float64, every int) (int, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("--dt must be positive, got %v", dt)
	}
	if every < 1 {
		every = 1
	}

	em := ecs.NewEntityManager()
	scene := &timelineScene{em: em}
	shieldSystem, err := systems.NewShieldSystem(em, scene, nil)
	if err != nil {
		return 0, err
	}

	owner := em.CreateEntity()
	shield := components.NewShieldComponent(cfg)
	ecs.AddComponent(em, owner, shield)

	fmt.Fprintf(w, "Shield timeline (dt=%.4fs, expected cycle >= %.2fs)\n", dt, cfg.TotalDuration())
	fmt.Fprintf(w, "%6s %8s  %-10s %8s %7s\n", "frame", "time", "state", "stateT", "scale")

	shieldSystem.Activate(owner)

	elapsed := 0.0
	frame := 0
	maxFrames := maxTimelineFrames(cfg, dt)
	for shieldSystem.IsActive(owner) && frame < maxFrames {
		before := shield.State
		shieldSystem.Update(dt)
		em.RemoveMarkedEntities()
		elapsed += dt
		frame++

		if frame%every == 0 || shield.State != before {
			fmt.Fprintf(w, "%6d %7.3fs  %-10s %7.3fs %7.3f\n", frame, elapsed, shield.State, shield.StateTime, scene.scale)
		}
	}

	fmt.Fprintln(w)
	if shieldSystem.IsActive(owner) {
		return frame, fmt.Errorf("shield still %s after %d frames", shield.State, frame)
	}
	if scene.alive || em.EntityCount() != 1 {
		return frame, fmt.Errorf("shield visual still alive after cycle")
	}
	fmt.Fprintf(w, "OK: cycle finished after %.3fs (%d frames, %d visual created)\n", elapsed, frame, scene.created)
	return frame, nil
}
