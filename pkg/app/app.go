// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// App 同时充当演示宿主：真实 AR 引擎提供的渲染和面部跟踪在这里
// 分别由 ebiten 绘制和输入驱动的模拟跟踪器代替——鼠标移动嘴部
// 位置，按住空格或鼠标左键张嘴。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"

	"github.com/fsnotify/fsnotify"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/facemunch/pkg/anim"
	"github.com/decker502/facemunch/pkg/config"
	"github.com/decker502/facemunch/pkg/facetrack"
	"github.com/decker502/facemunch/pkg/game"
	"github.com/decker502/facemunch/pkg/reactive"
	"github.com/decker502/facemunch/pkg/scene"
)

// 面部坐标系（米）到屏幕（像素）的映射参数
const (
	// pixelsPerMeter 坐标缩放：1 米 = 900 像素
	pixelsPerMeter = 900.0

	// spawnScreenY 下落起点（y=0）对应的屏幕纵坐标
	spawnScreenY = 80.0

	// itemRadiusMeters 下落物的渲染半径（米）
	itemRadiusMeters = 0.025

	// mouthOpenTarget 张嘴输入按下时的目标开合度
	mouthOpenTarget = 0.6

	// opennessSmoothing 开合度向目标值逼近的每帧比例（模拟真实跟踪的平滑）
	opennessSmoothing = 0.35
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部游戏配置文件路径，为空则使用内嵌默认配置
	// 指定时启用 fsnotify 热重载
	ConfigPath string
	// DefaultConfigData 内嵌的默认配置内容（根 embed.go 提供）
	DefaultConfigData []byte
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	gameCfg    *config.GameConfig
	graph      *scene.Graph
	engine     *anim.Engine
	tracker    *facetrack.SimulatedTracker
	controller *game.GameController

	// openness 模拟开合度的平滑当前值
	openness float64

	// watcher 配置热重载监视器（未指定外部配置时为 nil）
	watcher    *fsnotify.Watcher
	configPath string

	verbose bool
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载游戏配置：优先外部文件，否则内嵌默认
	var gameCfg *config.GameConfig
	var err error
	if cfg.ConfigPath != "" {
		gameCfg, err = config.LoadGameConfig(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("游戏配置加载失败: %w", err)
		}
		log.Printf("[App] Loaded config from %s", cfg.ConfigPath)
	} else {
		gameCfg, err = config.ParseGameConfig(cfg.DefaultConfigData)
		if err != nil {
			return nil, fmt.Errorf("内嵌默认配置解析失败: %w", err)
		}
		log.Printf("[App] Using embedded default config")
	}

	// 构建场景图：嘴部跟踪代理 + 下落物节点池
	graph := scene.NewGraph()
	face := graph.Root().AddChild("face")
	face.AddChild("mouth_proxy")
	food := graph.Root().AddChild("food")
	for i := 0; i < gameCfg.PoolSize; i++ {
		food.AddChild(fmt.Sprintf("item_%02d", i+1))
	}
	log.Printf("[App] Scene built: %d pool objects", gameCfg.PoolSize)

	// 动画引擎与模拟面部跟踪器
	engine := anim.NewEngine()
	tracker := facetrack.NewSimulatedTracker()

	// 创建并启动游戏控制器（依赖全部显式注入）
	controller := game.NewGameController(gameCfg, graph, engine, tracker, rand.New(rand.NewSource(rand.Int63())))
	controller.Start()

	a := &App{
		gameCfg:    gameCfg,
		graph:      graph,
		engine:     engine,
		tracker:    tracker,
		controller: controller,
		configPath: cfg.ConfigPath,
		verbose:    cfg.Verbose,
	}

	// 外部配置文件启用热重载
	if cfg.ConfigPath != "" {
		if err := a.startConfigWatcher(); err != nil {
			// 热重载失败不致命
			log.Printf("[App] Warning: config watcher disabled: %v", err)
		}
	}

	return a, nil
}

// startConfigWatcher 启动配置文件热重载监视
func (a *App) startConfigWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(a.configPath); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", a.configPath, err)
	}
	a.watcher = watcher
	log.Printf("[App] Watching %s for config changes", a.configPath)
	return nil
}

// pollConfigWatcher 非阻塞消费监视事件，保证重载在游戏循环线程上执行
func (a *App) pollConfigWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case event, ok := <-a.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				a.reloadConfig()
			}
		case err, ok := <-a.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[App] Config watcher error: %v", err)
		default:
			return
		}
	}
}

// reloadConfig 重新加载外部配置并应用到控制器
// 解析失败时保留当前配置
func (a *App) reloadConfig() {
	newCfg, err := config.LoadGameConfig(a.configPath)
	if err != nil {
		log.Printf("[App] Config reload failed, keeping current config: %v", err)
		return
	}
	a.gameCfg = newCfg
	a.controller.ApplyConfig(newCfg)
	log.Printf("[App] Config reloaded from %s", a.configPath)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.pollConfigWatcher()
	a.updateTrackerInput()

	// 推进宿主层：场景图解析异步查找，引擎推进动画和控制器定时器
	a.graph.Update()
	deltaTime := 1.0 / 60.0
	a.engine.Update(deltaTime)

	return nil
}

// updateTrackerInput 把输入状态写入模拟面部跟踪器
// 鼠标位置 → 嘴部中心；按住空格/鼠标左键 → 张嘴（带平滑）
func (a *App) updateTrackerInput() {
	mx, my := ebiten.CursorPosition()
	a.tracker.SetMouthCenter(a.screenToWorld(mx, my))

	target := 0.0
	if ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		target = mouthOpenTarget
	}
	a.openness += (target - a.openness) * opennessSmoothing
	a.tracker.SetMouthOpenness(a.openness)
}

// screenToWorld 屏幕坐标（像素）转换为面部坐标（米）
func (a *App) screenToWorld(sx, sy int) reactive.Vec3 {
	return reactive.Vec3{
		X: (float64(sx) - float64(a.gameCfg.WindowWidth)/2.0) / pixelsPerMeter,
		Y: (spawnScreenY - float64(sy)) / pixelsPerMeter,
	}
}

// worldToScreen 面部坐标（米）转换为屏幕坐标（像素）
func (a *App) worldToScreen(v reactive.Vec3) (float32, float32) {
	sx := float64(a.gameCfg.WindowWidth)/2.0 + v.X*pixelsPerMeter
	sy := spawnScreenY - v.Y*pixelsPerMeter
	return float32(sx), float32(sy)
}

// Draw 绘制演示画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 24, B: 32, A: 255})

	a.drawMouth(screen)
	a.drawObjects(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"State: %s    Eaten: %d    FPS: %.1f\nMouse: move mouth    Space/Click: open mouth",
		a.controller.State(), a.controller.EatenCount(), ebiten.ActualFPS()))
}

// drawMouth 绘制嘴部：外圈为嘴部轮廓，内圆半径随开合度变化
func (a *App) drawMouth(screen *ebiten.Image) {
	center := a.tracker.MouthCenter(0).Value()
	cx, cy := a.worldToScreen(center)

	openness := a.tracker.MouthOpenness(0).Value()
	mouthColor := color.RGBA{R: 200, G: 80, B: 90, A: 255}
	if openness > a.gameCfg.MouthOpenThreshold {
		mouthColor = color.RGBA{R: 240, G: 120, B: 130, A: 255}
	}

	// 嘴部轮廓（吞吃判定范围）
	rangeRadius := float32(a.gameCfg.EatRange * pixelsPerMeter)
	vector.StrokeCircle(screen, cx, cy, rangeRadius, 1, color.RGBA{R: 90, G: 90, B: 110, A: 255}, true)

	// 嘴部开口
	openRadius := float32((0.012 + 0.05*openness) * pixelsPerMeter / 2.0)
	vector.DrawFilledCircle(screen, cx, cy, openRadius, mouthColor, true)
}

// drawObjects 绘制所有可见的下落物
// 多面体在演示宿主中简化渲染为圆形
func (a *App) drawObjects(screen *ebiten.Image) {
	for _, obj := range a.controller.Objects() {
		if obj.Node.Hidden() {
			continue
		}
		cx, cy := a.worldToScreen(obj.Node.Position())
		radius := float32(itemRadiusMeters * pixelsPerMeter * obj.Node.Scale().X)
		if radius <= 0 {
			continue
		}
		vector.DrawFilledCircle(screen, cx, cy, radius, color.RGBA{R: 240, G: 200, B: 80, A: 255}, true)
		vector.StrokeCircle(screen, cx, cy, radius, 1, color.RGBA{R: 120, G: 100, B: 40, A: 255}, true)
	}
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.gameCfg.WindowWidth, a.gameCfg.WindowHeight
}

// GameConfig 返回当前生效的游戏配置
func (a *App) GameConfig() *config.GameConfig {
	return a.gameCfg
}

// Close 释放应用持有的资源（配置监视器、控制器定时器和动画）
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	a.controller.Stop()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
