package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PersonaConfig はアシスタントのペルソナ設定(configs/persona.yaml)の構造を定義
type PersonaConfig struct {
	Assistant struct {
		Name  string `yaml:"name"`
		Role  string `yaml:"role"`
		Model string `yaml:"model,omitempty"`
	} `yaml:"assistant"`

	Tone struct {
		Style       string `yaml:"style"`
		Personality string `yaml:"personality"`
	} `yaml:"tone"`

	FormattingRules []string `yaml:"formatting_rules"`
	Behaviors       []string `yaml:"behaviors"`
}

var cachedPersona *PersonaConfig

// DefaultPersona は設定ファイルが無い場合に使う組み込みペルソナを返す
func DefaultPersona() *PersonaConfig {
	p := &PersonaConfig{}
	p.Assistant.Name = "NexusBot"
	p.Assistant.Role = "expert inventory management assistant for an electronics store"
	p.Tone.Style = "short and professional"
	p.Tone.Personality = "encouraging but realistic about demand"
	p.FormattingRules = []string{
		"Use **bold** for product names, prices, and key numbers.",
		"Use bullet points (- item) for lists.",
		"Use ## for main headings (if the response is long).",
		"Keep paragraphs short and professional.",
		"Do not use markdown tables, use lists instead.",
		"All currency values should be in Indian Rupees (₹).",
	}
	p.Behaviors = []string{
		"If the user asks about trends, ALWAYS reference the items they currently have in stock first if applicable.",
		"Be encouraging but realistic about demand.",
	}
	return p
}

// LoadPersona はYAMLファイルからペルソナ設定を読み込む。
// ファイルが存在しない場合は組み込みのデフォルトを返す。
func LoadPersona() (*PersonaConfig, error) {
	if cachedPersona != nil {
		return cachedPersona, nil
	}

	data, err := os.ReadFile("configs/persona.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			cachedPersona = DefaultPersona()
			return cachedPersona, nil
		}
		return nil, fmt.Errorf("ペルソナ設定ファイルの読み込みに失敗: %w", err)
	}

	var persona PersonaConfig
	if err := yaml.Unmarshal(data, &persona); err != nil {
		return nil, fmt.Errorf("YAMLのパースに失敗: %w", err)
	}

	// 欠けている項目はデフォルトで補完
	def := DefaultPersona()
	if persona.Assistant.Name == "" {
		persona.Assistant.Name = def.Assistant.Name
	}
	if persona.Assistant.Role == "" {
		persona.Assistant.Role = def.Assistant.Role
	}
	if persona.Tone.Style == "" {
		persona.Tone.Style = def.Tone.Style
	}
	if persona.Tone.Personality == "" {
		persona.Tone.Personality = def.Tone.Personality
	}
	if len(persona.FormattingRules) == 0 {
		persona.FormattingRules = def.FormattingRules
	}
	if len(persona.Behaviors) == 0 {
		persona.Behaviors = def.Behaviors
	}

	cachedPersona = &persona
	return cachedPersona, nil
}

// ResetPersonaCache はキャッシュをクリアする（テスト用）
func ResetPersonaCache() {
	cachedPersona = nil
}
