package persona

import (
	"fmt"
	"log"

	"github.com/BurntSushi/toml"
)

// Fallbacks are the persona-styled replies used when the model cannot answer.
type Fallbacks struct {
	// Unavailable is used when the model endpoint answers with an error status.
	Unavailable string `toml:"unavailable" json:"unavailable"`
	// Hiccup is used for unreadable responses and transport failures.
	Hiccup string `toml:"hiccup" json:"hiccup"`
	// Unclear is used when the response carries no reply text.
	Unclear string `toml:"unclear" json:"unclear"`
}

// Profile gathers every piece of persona text the service emits.
type Profile struct {
	Name              string    `toml:"name" json:"name"`
	UserLabel         string    `toml:"user_label" json:"userLabel"`
	SystemPrompt      string    `toml:"system_prompt" json:"systemPrompt"`
	StyleGuide        string    `toml:"style_guide" json:"styleGuide"`
	ActivityHeader    string    `toml:"activity_header" json:"activityHeader"`
	HistoryHeader     string    `toml:"history_header" json:"historyHeader"`
	MessageLead       string    `toml:"message_lead" json:"messageLead"`
	Trailer           string    `toml:"trailer" json:"trailer"`
	EmptyMessageReply string    `toml:"empty_message_reply" json:"emptyMessageReply"`
	Fallbacks         Fallbacks `toml:"fallbacks" json:"fallbacks"`
}

const jayStyleGuide = `你是周杰伦（Jay Chou），需要模仿他的说话风格:
1. 常用口头禅："哎哟不错哦"、"屌"、"蛮酷的"、"这样子"
2. 说话带点台湾腔，语气轻松随意
3. 经常提到音乐创作、篮球、电影、家人等话题
4. 回答简洁有力，不会说太多客套话
5. 会用幽默风趣的方式回应问题
6. 提到自己的作品时会带有自信但不傲慢`

// DefaultProfile returns the built-in Jay Chou persona.
func DefaultProfile() Profile {
	return Profile{
		Name:              "周杰伦",
		UserLabel:         "用户",
		SystemPrompt:      "你是周杰伦的AI分身，模拟他的说话风格",
		StyleGuide:        jayStyleGuide,
		ActivityHeader:    "周杰伦近期动态：",
		HistoryHeader:     "对话历史：",
		MessageLead:       "现在用户说：",
		Trailer:           "请以周杰伦的身份和语气回复用户，保持自然，不要太长：",
		EmptyMessageReply: "请输入内容再发送哦！",
		Fallbacks: Fallbacks{
			Unavailable: "抱歉，暂时无法回复，稍后再试~",
			Hiccup:      "抱歉，网络有点小问题，稍后再聊吧～",
			Unclear:     "抱歉，我没听清楚，可以再问一次吗？",
		},
	}
}

// LoadProfile reads a TOML profile from path and overlays it on the default
// profile, so a file only needs the keys it wants to change.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	md, err := toml.DecodeFile(path, &profile)
	if err != nil {
		return Profile{}, fmt.Errorf("load persona profile %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("[persona] ignoring unknown profile key %q in %s", key.String(), path)
	}
	return profile, nil
}
