package main

import (
	"flag"
	"log"

	"github.com/decker502/tcgame/pkg/app"
	"github.com/decker502/tcgame/pkg/config"
	"github.com/decker502/tcgame/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag  = flag.String("config", "", "Shield config file (default: embedded data/shield.yaml)")
	assetsFlag  = flag.String("assets", "", "Asset directory (default: assets)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		AssetRoot:  *assetsFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)

	// 窗口关闭时保存设置
	gameApp.GetSceneManager().SaveOnExit()

	if runErr != nil {
		log.Fatal(runErr)
	}
}
