package config

import (
	"os"
	"path/filepath"
	"testing"
)

// init 函数在测试开始前切换到项目根目录
// 确保所有相对路径（如 assets/）都能正确访问
func init() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	// 向上查找直到找到 go.mod
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			os.Chdir(dir)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// TestLoadEnemyStats 测试从真实配置文件加载敌人属性
func TestLoadEnemyStats(t *testing.T) {
	config, err := LoadEnemyStats("assets/config/enemy_stats.yaml")
	if err != nil {
		t.Fatalf("加载敌人属性配置失败: %v", err)
	}

	if len(config.Enemies) == 0 {
		t.Fatal("配置中应至少有一种敌人类型")
	}

	basic, ok := config.Enemies["basic"]
	if !ok {
		t.Fatal("配置中必须包含 basic 类型（回退类型）")
	}
	if basic.Health != 30 {
		t.Errorf("basic 生命值应为30, got %d", basic.Health)
	}
	if basic.Pattern != "straight" {
		t.Errorf("basic 移动模式应为 straight, got %q", basic.Pattern)
	}
}

// TestLoadEnemyStatsFileNotFound 测试文件不存在时返回错误
func TestLoadEnemyStatsFileNotFound(t *testing.T) {
	if _, err := LoadEnemyStats("assets/config/no_such_file.yaml"); err == nil {
		t.Error("文件不存在时应返回错误")
	}
}

// TestValidateEnemyStatsRejectsInvalid 测试非法配置被拒绝
func TestValidateEnemyStatsRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"空配置", "enemies: {}\n"},
		{"缺少basic", "enemies:\n  fast:\n    health: 20\n    damage: 8\n    speed: 110\n    experienceValue: 15\n    pattern: sine_wave\n    unlockLevel: 3\n"},
		{"生命值为零", "enemies:\n  basic:\n    health: 0\n    damage: 10\n    speed: 60\n    experienceValue: 10\n    pattern: straight\n    unlockLevel: 1\n"},
		{"负伤害", "enemies:\n  basic:\n    health: 30\n    damage: -5\n    speed: 60\n    experienceValue: 10\n    pattern: straight\n    unlockLevel: 1\n"},
	}

	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "enemy_stats.yaml")
		if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
			t.Fatalf("%s: 写入临时配置失败: %v", tc.name, err)
		}
		if _, err := LoadEnemyStats(path); err == nil {
			t.Errorf("%s: 非法配置应被拒绝", tc.name)
		}
	}
}

// TestGetEnemyStatsFallback 测试未知类型回退为 basic
func TestGetEnemyStatsFallback(t *testing.T) {
	config := DefaultEnemyStats()

	unknown := config.GetEnemyStats("no_such_type")
	basic := config.GetEnemyStats("basic")

	if unknown != basic {
		t.Error("未知敌人类型应回退为 basic 的属性")
	}
}

// TestDefaultMatchesShippedConfig 测试内置默认值与发布的配置文件一致
func TestDefaultMatchesShippedConfig(t *testing.T) {
	loaded, err := LoadEnemyStats("assets/config/enemy_stats.yaml")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	defaults := DefaultEnemyStats()
	for name, want := range defaults.Enemies {
		got, ok := loaded.Enemies[name]
		if !ok {
			t.Errorf("配置文件缺少内置默认类型 %q", name)
			continue
		}
		if got != want {
			t.Errorf("类型 %q 的配置与内置默认不一致: got %+v, want %+v", name, got, want)
		}
	}
}
