// 无头验证工具：不开窗口，用脚本化的嘴部输入跑一局游戏逻辑，
// 打印状态推进和吞吃事件，用于快速核对判定阈值和动画节奏。
//
// 用法：
//
//	go run ./cmd/verify_session --seconds 20 --seed 42
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/facemunch/pkg/anim"
	"github.com/decker502/facemunch/pkg/config"
	"github.com/decker502/facemunch/pkg/facetrack"
	"github.com/decker502/facemunch/pkg/game"
	"github.com/decker502/facemunch/pkg/reactive"
	"github.com/decker502/facemunch/pkg/scene"
)

var (
	seconds    = flag.Float64("seconds", 20, "模拟时长（秒）")
	seed       = flag.Int64("seed", 42, "随机种子")
	configPath = flag.String("config", "", "外部配置文件路径（默认使用内置默认值）")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

const frameDt = 1.0 / 60.0

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	g := scene.NewGraph()
	face := g.Root().AddChild("face")
	face.AddChild("mouth_proxy")
	food := g.Root().AddChild("food")
	for i := 1; i <= cfg.PoolSize; i++ {
		food.AddChild(fmt.Sprintf("item_%02d", i))
	}

	engine := anim.NewEngine()
	tracker := facetrack.NewSimulatedTracker()
	tracker.SetMouthCenter(reactive.Vec3{Y: cfg.BottomY / 2})

	rng := rand.New(rand.NewSource(*seed))
	controller := game.NewGameController(cfg, g, engine, tracker, rng)
	controller.Start()

	fmt.Printf("模拟开始: %.0fs, 种子 %d, 节点池 %d\n", *seconds, *seed, cfg.PoolSize)

	lastState := controller.State()
	lastEaten := 0
	frames := int(*seconds / frameDt)

	for frame := 0; frame <= frames; frame++ {
		elapsed := float64(frame) * frameDt

		// 脚本化输入：嘴一直张着，水平位置慢速来回扫动，
		// 等下落物自己落进吞吃范围
		tracker.SetMouthOpenness(0.6)
		sweep := cfg.SpawnXRange * sweepPhase(elapsed)
		tracker.SetMouthCenter(reactive.Vec3{X: sweep, Y: cfg.BottomY / 2})

		g.Update()
		engine.Update(frameDt)

		if s := controller.State(); s != lastState {
			fmt.Printf("[%6.2fs] 状态: %s -> %s\n", elapsed, lastState, s)
			lastState = s
		}
		if n := controller.EatenCount(); n != lastEaten {
			fmt.Printf("[%6.2fs] 吞吃 #%d\n", elapsed, n)
			lastEaten = n
		}
	}

	falling := 0
	for _, obj := range controller.Objects() {
		if obj.Falling {
			falling++
		}
	}
	controller.Stop()

	fmt.Printf("模拟结束: 吞吃 %d 次, 结束时 %d 个物体仍在下落\n", lastEaten, falling)
	if lastEaten == 0 {
		fmt.Println("警告: 一次都没接到，检查 eatRange/mouthOpenThreshold 配置")
		os.Exit(1)
	}
}

// sweepPhase 返回 [-1, 1] 的三角波，周期 8 秒
func sweepPhase(elapsed float64) float64 {
	const period = 8.0
	frac := elapsed / period
	frac -= float64(int(frac))
	if frac < 0.5 {
		return frac*4 - 1
	}
	return 3 - frac*4
}
