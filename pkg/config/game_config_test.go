package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultGameConfig 测试内置默认值
func TestDefaultGameConfig(t *testing.T) {
	cfg := DefaultGameConfig()

	if cfg.TickIntervalMs != 250 {
		t.Errorf("默认轮询间隔应该是 250ms, 实际: %v", cfg.TickIntervalMs)
	}
	if cfg.EatRange != 0.06 {
		t.Errorf("默认吞吃判定距离应该是 0.06, 实际: %v", cfg.EatRange)
	}
	if cfg.FallEase != "easeInQuad" {
		t.Errorf("默认下落缓动应该是 easeInQuad, 实际: %s", cfg.FallEase)
	}
	if cfg.BottomY >= 0 {
		t.Errorf("默认下落终点应该为负值, 实际: %v", cfg.BottomY)
	}
	if cfg.PoolPattern != "food/item_*" {
		t.Errorf("默认节点池模式不符: %s", cfg.PoolPattern)
	}
}

// TestParseGameConfigPartial 测试部分字段的 YAML：缺失字段回填默认值
func TestParseGameConfigPartial(t *testing.T) {
	data := []byte(`
tickIntervalMs: 100
eatRange: 0.1
`)
	cfg, err := ParseGameConfig(data)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}

	if cfg.TickIntervalMs != 100 {
		t.Errorf("显式字段应该生效: 期望 100, 实际: %v", cfg.TickIntervalMs)
	}
	if cfg.EatRange != 0.1 {
		t.Errorf("显式字段应该生效: 期望 0.1, 实际: %v", cfg.EatRange)
	}
	if cfg.FallDurationSec != 3.0 {
		t.Errorf("缺失字段应该回填默认值 3.0, 实际: %v", cfg.FallDurationSec)
	}
	if cfg.MouthProxyPath != "face/mouth_proxy" {
		t.Errorf("缺失字段应该回填默认路径, 实际: %s", cfg.MouthProxyPath)
	}
}

// TestParseGameConfigInvalidYAML 测试非法 YAML 返回错误
func TestParseGameConfigInvalidYAML(t *testing.T) {
	_, err := ParseGameConfig([]byte("tickIntervalMs: [not a number"))
	if err == nil {
		t.Fatal("非法 YAML 应该返回错误")
	}
}

// TestParseGameConfigValidation 测试字段合法性验证
func TestParseGameConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{"负的轮询间隔", "tickIntervalMs: -50", "tickIntervalMs"},
		{"正的下落终点", "bottomY: 0.5", "bottomY"},
		{"负的下落时长", "fallDurationSec: -1", "fallDurationSec"},
		{"负的吞吃距离", "eatRange: -0.01", "eatRange"},
		{"负的水平偏移范围", "spawnXRange: -0.1", "spawnXRange"},
		{"负的节点池数量", "poolSize: -3", "poolSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGameConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("配置 %q 应该验证失败", tt.yaml)
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("错误信息应该包含 %q, 实际: %v", tt.errPart, err)
			}
		})
	}
}

// TestLoadGameConfig 测试从文件加载
func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	content := []byte(`
tickIntervalMs: 200
mouthOpenThreshold: 0.3
poolPattern: "gems/gem_*"
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("写入测试配置失败: %v", err)
	}

	cfg, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}

	if cfg.TickIntervalMs != 200 {
		t.Errorf("轮询间隔应该是 200, 实际: %v", cfg.TickIntervalMs)
	}
	if cfg.MouthOpenThreshold != 0.3 {
		t.Errorf("张嘴阈值应该是 0.3, 实际: %v", cfg.MouthOpenThreshold)
	}
	if cfg.PoolPattern != "gems/gem_*" {
		t.Errorf("节点池模式应该是 gems/gem_*, 实际: %s", cfg.PoolPattern)
	}
}

// TestLoadGameConfigMissingFile 测试文件不存在返回错误
func TestLoadGameConfigMissingFile(t *testing.T) {
	_, err := LoadGameConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("文件不存在应该返回错误")
	}
}
