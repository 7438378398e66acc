package search

import (
	"testing"

	"corvid/attacks"
)

func TestMain(m *testing.M) {
	attacks.Init()
	m.Run()
}
