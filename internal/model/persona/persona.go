package persona

// Post is one simulated social-media entry used to flavor replies.
type Post struct {
	Content string `json:"content"`
	Date    string `json:"date"`
}

// Seed provides the built-in posts written when the store is empty.
// The list is ordered most recent first and that order is relied upon.
func Seed() []Post {
	return []Post{
		{Content: "新专辑制作中，敬请期待！哎哟不错哦～", Date: "2023-10-15"},
		{Content: "今天和弹头、宇豪一起创作，怀念以前的时光", Date: "2023-10-10"},
		{Content: "篮球是我的爱好，音乐是我的生命", Date: "2023-09-28"},
		{Content: "谢谢大家支持我的电影，接下来会有更多惊喜", Date: "2023-09-15"},
		{Content: "给女儿写了首歌，希望她以后会喜欢", Date: "2023-09-05"},
		{Content: "华语音乐需要更多创新，我会继续努力", Date: "2023-08-20"},
		{Content: "演唱会的歌单正在确定中，你们最想听哪首？", Date: "2023-08-10"},
		{Content: "怀念刚出道的时候，那时候的冲劲很足", Date: "2023-07-25"},
	}
}
