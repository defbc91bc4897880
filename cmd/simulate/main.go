// simulate 无界面跑若干局，用简单的瞄准机器人验证玩法数值
//
// 用法：
//
//	go run ./cmd/simulate -runs 5 -accuracy 0.8
//	go run ./cmd/simulate -seed 42 -duration 30 -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/decker502/duckhunt/pkg/embedded"
	"github.com/decker502/duckhunt/pkg/game"
	"github.com/decker502/duckhunt/pkg/scenes"
	"github.com/decker502/duckhunt/pkg/utils"
)

const (
	tickRate = 60
	// maxTicks 单局帧数上限，防止配置异常时死循环
	maxTicks = tickRate * 60 * 30
)

var (
	dataRoot = flag.String("data", ".", "包含 data/ 目录的项目根路径")
	seed     = flag.Int64("seed", 1, "随机种子（每局递增）")
	runs     = flag.Int("runs", 3, "模拟局数")
	accuracy = flag.Float64("accuracy", 0.75, "机器人命中率 0~1")
	interval = flag.Float64("interval", 0.35, "机器人两次开枪的间隔（秒）")
	duration = flag.Float64("duration", 0, "覆盖一局时长（秒），0 表示使用配置")
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS(*dataRoot))
	bundle, err := embedded.LoadBundle()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if *duration > 0 {
		bundle.Gameplay.Run.Duration = *duration
	}

	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("simulate: runs=%d accuracy=%.2f interval=%.2fs duration=%.0fs\n",
		*runs, *accuracy, *interval, bundle.Gameplay.Run.Duration)
	fmt.Println(strings.Repeat("=", 72))

	for i := 0; i < *runs; i++ {
		scene := scenes.NewGameScene(scenes.Options{
			Gameplay: bundle.Gameplay,
			Spawn:    bundle.Spawn,
			PowerUps: bundle.PowerUps,
			Seed:     *seed + int64(i),
		})
		bot := &aimBot{
			rng:      utils.NewRandom(*seed + int64(i) + 1000),
			accuracy: *accuracy,
			interval: *interval,
		}
		printSummary(i+1, simulate(scene, bot), bot)
	}
}

// aimBot 每隔 interval 秒瞄准最早出现的目标开一枪，按 accuracy 概率故意打偏
type aimBot struct {
	rng      *utils.Random
	accuracy float64
	interval float64
	cooldown float64
	picks    []string
}

func (b *aimBot) act(scene *scenes.GameScene, dt float64) {
	snap := scene.Snapshot()
	switch snap.Phase {
	case game.PhasePowerUpSelection:
		if len(snap.Offer) == 0 {
			return
		}
		choice := b.rng.Intn(len(snap.Offer))
		acquired, err := scene.ChoosePowerUp(choice)
		if err != nil {
			log.Printf("[Simulate] Choice rejected: %v", err)
			return
		}
		b.picks = append(b.picks, fmt.Sprintf("%s@%d", acquired.Definition.ID, acquired.Definition.Level))
	case game.PhasePlay:
		b.cooldown -= dt
		if b.cooldown > 0 || len(snap.Targets) == 0 {
			return
		}
		b.cooldown = b.interval

		if !b.rng.Chance(b.accuracy) {
			// 打向天空左上角
			scene.Shoot(2, 2)
			return
		}
		x, y, _, ok := scene.Camera().Project(snap.Targets[0].Position)
		if !ok {
			return
		}
		scene.Shoot(x, y)
	}
}

// simulate 从开始界面开局，直到本局结束或达到帧数上限
func simulate(scene *scenes.GameScene, bot *aimBot) scenes.Snapshot {
	dt := 1.0 / tickRate
	scene.Start()
	for tick := 0; tick < maxTicks; tick++ {
		bot.act(scene, dt)
		scene.Update(dt)
		if scene.Phase() == game.PhaseEnd {
			break
		}
	}
	return scene.Snapshot()
}

func printSummary(index int, snap scenes.Snapshot, bot *aimBot) {
	s := snap.Stats
	fmt.Printf("run %d: %-8s score=%-6d level=%-2d lives=%d/%d maxCombo=%d\n",
		index, snap.Outcome, snap.Score, snap.Level, snap.Lives, snap.MaxLives, snap.MaxCombo)
	fmt.Printf("       shots=%d hits=%d (%.0f%%) forgiven=%d head=%d beak=%d longest=%d\n",
		s.Shots, s.Hits, s.Accuracy()*100, s.Forgiven, s.HeadShots, s.BeakShots, s.LongestRun)
	if len(bot.picks) > 0 {
		fmt.Printf("       picks: %s\n", strings.Join(bot.picks, ", "))
	}
}
