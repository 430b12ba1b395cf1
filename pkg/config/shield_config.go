package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 护盾默认参数
// 配置文件缺失或字段未填写时使用这些值
const (
	// DefaultShieldLoadingTime 护盾展开时长（秒）
	DefaultShieldLoadingTime = 0.2

	// DefaultShieldLoadedTime 护盾保持时长（秒）
	DefaultShieldLoadedTime = 5.0

	// DefaultShieldUnloadingTime 护盾收起时长（秒）
	DefaultShieldUnloadingTime = 0.2

	// DefaultShieldMinScale 护盾最小缩放
	DefaultShieldMinScale = 0.1

	// DefaultShieldMaxScale 护盾最大缩放
	DefaultShieldMaxScale = 1.0

	// DefaultShieldTexture 护盾精灵表路径
	DefaultShieldTexture = "Textures/Shield"

	// DefaultShieldFrameColumns 护盾精灵表列数
	DefaultShieldFrameColumns = 3

	// DefaultShieldFrameRows 护盾精灵表行数
	DefaultShieldFrameRows = 2

	// DefaultShieldFrameFPS 护盾动画帧率
	DefaultShieldFrameFPS = 12.0

	// DefaultShieldOffsetX 护盾相对持盾者的X偏移
	DefaultShieldOffsetX = 0.0

	// DefaultShieldOffsetY 护盾相对持盾者的Y偏移
	DefaultShieldOffsetY = 20.0
)

// ShieldConfig 护盾配置
//
// 配置文件位置: data/shield.yaml（默认配置嵌入在可执行文件中）
type ShieldConfig struct {
	// 状态机时长（秒）
	LoadingTime   float64 `yaml:"loadingTime"`
	LoadedTime    float64 `yaml:"loadedTime"`
	UnloadingTime float64 `yaml:"unloadingTime"`

	// 缩放范围
	MinScale float64 `yaml:"minScale"`
	MaxScale float64 `yaml:"maxScale"`

	// Texture 精灵表资源路径（不含扩展名，ResourceManager 负责补全）
	Texture string `yaml:"texture"`

	// 精灵表网格与帧率
	FrameColumns int     `yaml:"frameColumns"`
	FrameRows    int     `yaml:"frameRows"`
	FrameFPS     float64 `yaml:"frameFPS"`

	// 护盾相对持盾者的偏移（像素）
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
}

// DefaultShieldConfig 返回默认护盾配置
func DefaultShieldConfig() *ShieldConfig {
	return &ShieldConfig{
		LoadingTime:   DefaultShieldLoadingTime,
		LoadedTime:    DefaultShieldLoadedTime,
		UnloadingTime: DefaultShieldUnloadingTime,
		MinScale:      DefaultShieldMinScale,
		MaxScale:      DefaultShieldMaxScale,
		Texture:       DefaultShieldTexture,
		FrameColumns:  DefaultShieldFrameColumns,
		FrameRows:     DefaultShieldFrameRows,
		FrameFPS:      DefaultShieldFrameFPS,
		OffsetX:       DefaultShieldOffsetX,
		OffsetY:       DefaultShieldOffsetY,
	}
}

// ParseShieldConfig 解析 YAML 格式的护盾配置
//
// 未出现在 YAML 中的字段保持默认值。
//
// 参数:
//   - data: YAML 内容
//
// 返回:
//   - *ShieldConfig: 解析并验证后的配置
//   - error: 解析或验证失败时返回错误
func ParseShieldConfig(data []byte) (*ShieldConfig, error) {
	config := DefaultShieldConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse shield config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shield config: %w", err)
	}

	return config, nil
}

// LoadShieldConfig 从文件加载护盾配置
//
// 参数:
//   - path: 配置文件路径（如 "data/shield.yaml"）
//
// 返回:
//   - *ShieldConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadShieldConfig(path string) (*ShieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shield config: %w", err)
	}
	return ParseShieldConfig(data)
}

// Validate 验证配置有效性
//
// 检查：
//   - 三个状态时长都必须为正数（时长作为插值分母）
//   - 0 <= MinScale <= MaxScale
//   - 精灵表网格至少 1x1，帧率为正数
func (c *ShieldConfig) Validate() error {
	if c.LoadingTime <= 0 {
		return fmt.Errorf("loadingTime must be > 0, got %.3f", c.LoadingTime)
	}
	if c.LoadedTime <= 0 {
		return fmt.Errorf("loadedTime must be > 0, got %.3f", c.LoadedTime)
	}
	if c.UnloadingTime <= 0 {
		return fmt.Errorf("unloadingTime must be > 0, got %.3f", c.UnloadingTime)
	}
	if c.MinScale < 0 {
		return fmt.Errorf("minScale must be >= 0, got %.3f", c.MinScale)
	}
	if c.MinScale > c.MaxScale {
		return fmt.Errorf("scale range invalid: min(%.3f) > max(%.3f)", c.MinScale, c.MaxScale)
	}
	if c.FrameColumns < 1 || c.FrameRows < 1 {
		return fmt.Errorf("frame grid must be at least 1x1, got %dx%d", c.FrameColumns, c.FrameRows)
	}
	if c.FrameFPS <= 0 {
		return fmt.Errorf("frameFPS must be > 0, got %.3f", c.FrameFPS)
	}
	return nil
}

// TotalDuration 返回一次完整护盾周期的最短时长（秒）
func (c *ShieldConfig) TotalDuration() float64 {
	return c.LoadingTime + c.LoadedTime + c.UnloadingTime
}
