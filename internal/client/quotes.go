package client

import "math/rand/v2"

// Quote stats 顯示的鼓勵語，全部內建不對外請求
type Quote struct {
	Text   string
	Author string
}

const quoteAuthor = "Digital Mood Co-Worker"

var Quotes = []Quote{
	{"Keep going. Small steps still move you forward.", quoteAuthor},
	{"Progress, not perfection.", quoteAuthor},
	{"You showed up today. That matters.", quoteAuthor},
	{"Even quiet days count as progress.", quoteAuthor},
	{"Be patient with yourself.", quoteAuthor},
}

// quoteIndex 測試可替換
var quoteIndex = rand.IntN

func RandomQuote() Quote {
	return Quotes[quoteIndex(len(Quotes))]
}

func (q Quote) String() string {
	return "\"" + q.Text + "\" - " + q.Author
}
