package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/facemunch/pkg/app"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "外部游戏配置文件路径（支持热重载），为空则使用内嵌默认配置")
	flag.Parse()

	// 创建游戏应用
	gameApp, err := app.NewApp(app.Config{
		Verbose:           *verbose,
		ConfigPath:        *configPath,
		DefaultConfigData: defaultConfigData,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	// 设置窗口属性
	gameCfg := gameApp.GameConfig()
	ebiten.SetWindowSize(gameCfg.WindowWidth, gameCfg.WindowHeight)
	ebiten.SetWindowTitle(gameCfg.WindowTitle)

	// 启动游戏循环
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
