package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig 游戏调参配置
// 定义状态机节奏、下落/吞吃动画参数和判定阈值。
// 默认配置内嵌在仓库根的 data/game.yaml 中，
// 也可通过 --config 指定外部文件（支持热重载）。
type GameConfig struct {
	// TickIntervalMs 状态机轮询间隔（毫秒），默认 250
	TickIntervalMs float64 `yaml:"tickIntervalMs"`

	// FallDurationSec 单次下落动画时长（秒）
	FallDurationSec float64 `yaml:"fallDurationSec"`

	// EatDurationSec 吞吃收缩动画时长（秒）
	EatDurationSec float64 `yaml:"eatDurationSec"`

	// BottomY 下落终点的垂直坐标（面部坐标系，米，向下为负）
	// 下落 Tween 从 0 插值到此值
	BottomY float64 `yaml:"bottomY"`

	// SpawnXRange 下落起点水平偏移的随机范围（米）
	// 每次开始下落时在 [-SpawnXRange, +SpawnXRange] 内随机
	SpawnXRange float64 `yaml:"spawnXRange"`

	// EatRange 吞吃判定距离阈值（米）
	// 下落物到嘴部中心的距离低于此值且嘴张开时判定为接住
	EatRange float64 `yaml:"eatRange"`

	// MouthOpenThreshold 嘴部开合度阈值，高于此值视为张嘴
	MouthOpenThreshold float64 `yaml:"mouthOpenThreshold"`

	// FallEase 下落动画缓动函数名称
	FallEase string `yaml:"fallEase"`

	// EatEase 吞吃动画缓动函数名称
	EatEase string `yaml:"eatEase"`

	// PoolPattern 下落物节点池的场景图查找模式
	PoolPattern string `yaml:"poolPattern"`

	// MouthProxyPath 嘴部跟踪代理节点的场景图路径
	MouthProxyPath string `yaml:"mouthProxyPath"`

	// PoolSize 演示宿主构建场景时创建的下落物数量
	PoolSize int `yaml:"poolSize"`

	// WindowTitle 演示宿主窗口标题
	WindowTitle string `yaml:"windowTitle"`

	// WindowWidth, WindowHeight 演示宿主窗口逻辑尺寸
	WindowWidth  int `yaml:"windowWidth"`
	WindowHeight int `yaml:"windowHeight"`
}

// DefaultGameConfig 返回内置默认配置
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{}
	applyDefaults(cfg)
	return cfg
}

// LoadGameConfig 从 YAML 文件加载游戏配置
// 缺失的可选字段回填默认值，非法字段返回错误
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", filepath, err)
	}

	return cfg, nil
}

// ParseGameConfig 从 YAML 字节解析游戏配置
// 用于加载内嵌的默认配置
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateGameConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults 为缺失的字段设置默认值（向后兼容性）
func applyDefaults(cfg *GameConfig) {
	if cfg.TickIntervalMs == 0 {
		cfg.TickIntervalMs = 250
	}
	if cfg.FallDurationSec == 0 {
		cfg.FallDurationSec = 3.0
	}
	if cfg.EatDurationSec == 0 {
		cfg.EatDurationSec = 0.25
	}
	if cfg.BottomY == 0 {
		cfg.BottomY = -0.35
	}
	if cfg.SpawnXRange == 0 {
		cfg.SpawnXRange = 0.08
	}
	if cfg.EatRange == 0 {
		cfg.EatRange = 0.06
	}
	if cfg.MouthOpenThreshold == 0 {
		cfg.MouthOpenThreshold = 0.2
	}
	if cfg.FallEase == "" {
		cfg.FallEase = "easeInQuad"
	}
	if cfg.EatEase == "" {
		cfg.EatEase = "easeInQuad"
	}
	if cfg.PoolPattern == "" {
		cfg.PoolPattern = "food/item_*"
	}
	if cfg.MouthProxyPath == "" {
		cfg.MouthProxyPath = "face/mouth_proxy"
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 6
	}
	if cfg.WindowTitle == "" {
		cfg.WindowTitle = "FaceMunch - 张嘴接宝石"
	}
	if cfg.WindowWidth == 0 {
		cfg.WindowWidth = 800
	}
	if cfg.WindowHeight == 0 {
		cfg.WindowHeight = 600
	}
}

// validateGameConfig 验证配置的合法性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.TickIntervalMs <= 0 {
		return fmt.Errorf("tickIntervalMs must be positive, got %v", cfg.TickIntervalMs)
	}
	if cfg.FallDurationSec <= 0 {
		return fmt.Errorf("fallDurationSec must be positive, got %v", cfg.FallDurationSec)
	}
	if cfg.EatDurationSec <= 0 {
		return fmt.Errorf("eatDurationSec must be positive, got %v", cfg.EatDurationSec)
	}
	if cfg.BottomY >= 0 {
		return fmt.Errorf("bottomY must be negative (falling downward), got %v", cfg.BottomY)
	}
	if cfg.EatRange <= 0 {
		return fmt.Errorf("eatRange must be positive, got %v", cfg.EatRange)
	}
	if cfg.MouthOpenThreshold <= 0 {
		return fmt.Errorf("mouthOpenThreshold must be positive, got %v", cfg.MouthOpenThreshold)
	}
	if cfg.SpawnXRange < 0 {
		return fmt.Errorf("spawnXRange must not be negative, got %v", cfg.SpawnXRange)
	}
	if cfg.PoolSize < 0 {
		return fmt.Errorf("poolSize must not be negative, got %v", cfg.PoolSize)
	}
	return nil
}
