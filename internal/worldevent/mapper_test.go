package worldevent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jynba/worldline/internal/domain"
)

func TestMapChange(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.ItemKind
		from    string
		to      string
		wantID  string
		wantHit bool
	}{
		{"bug resolved", domain.KindBug, "测试中", "已解决", EventBugFixed, true},
		{"bug reopened chinese", domain.KindBug, "已解决", "重新打开", EventBugReopened, true},
		{"bug reopened english", domain.KindBug, "已解决", "Reopened", EventBugReopened, true},
		{"bug ordinary transition", domain.KindBug, "开发中", "测试中", "", false},
		{"story rollback one stage", domain.KindStory, "实现中", "规划中", EventStoryRollback, true},
		{"story rollback from done", domain.KindStory, "已完成", "实现中", EventStoryRollback, true},
		{"story forward progress", domain.KindStory, "规划中", "实现中", "", false},
		{"story outside lifecycle", domain.KindStory, "测试中", "已测完", "", false},
		{"story from outside lifecycle", domain.KindStory, "测试中", "规划中", "", false},
		{"story resolved is not a bug fix", domain.KindStory, "测试中", "已解决", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := MapChange(domain.StatusChange{Kind: tt.kind, From: tt.from, To: tt.to})
			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestMapChangeIsDeterministic(t *testing.T) {
	change := domain.StatusChange{Kind: domain.KindBug, From: "测试中", To: "已解决"}

	first, _ := MapChange(change)
	for i := 0; i < 10; i++ {
		id, ok := MapChange(change)
		assert.True(t, ok)
		assert.Equal(t, first, id)
	}
}
