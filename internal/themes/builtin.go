package themes

// DefaultID is the theme used when none is selected.
const DefaultID = "emojis"

func init() {
	Register(Theme{
		ID:    "emojis",
		Title: "Emojis",
		Faces: []string{
			"😀", "😂", "😍", "😎", "🤔", "😴", "🤯", "🥳",
			"😇", "🤠", "🤡", "👻", "👽", "🤖", "🎃", "😺",
			"🙈", "💩", "👾", "🦄", "🌈", "⭐", "🔥", "🍕",
			"🍩", "🍉", "🎈", "🎲", "🎸", "🚀", "⚽", "💎",
		},
	})
	Register(Theme{
		ID:    "animals",
		Title: "Animals",
		Faces: []string{
			"🐜", "🦡", "🦇", "🐻", "🦬", "🦋", "🐫", "🐱",
			"🐛", "🐮", "🦀", "🐶", "🐬", "🐘", "🦩", "🪰",
			"🦊", "🐐", "🦍", "🐴", "🪼", "🦘", "🦞", "🐒",
			"🐵", "🐼", "🦚", "🐧", "🐷", "🐾", "🐰", "🐏",
			"🐀", "🦏", "🐓", "🦭", "🦈", "🐌", "🕷", "🐿",
			"🐯", "🐠", "🐢", "🐃", "🐳", "🐺",
		},
	})
}
