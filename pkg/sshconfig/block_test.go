package sshconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcise(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		alias       string
		want        string
		wantRemoved bool
	}{
		{
			name:    "empty file",
			content: "",
			alias:   "github-work",
			want:    "",
		},
		{
			name:        "only block",
			content:     "Host github-work\n  HostName github.com\n",
			alias:       "github-work",
			want:        "",
			wantRemoved: true,
		},
		{
			name:        "middle block runs until next Host line",
			content:     "Host a\n  User x\n\nHost github-work\n  User git\n\nHost b\n  User y\n",
			alias:       "github-work",
			want:        "Host a\n  User x\n\nHost b\n  User y\n",
			wantRemoved: true,
		},
		{
			name:    "prefix match is not a match",
			content: "Host github-work2\n  User git\n",
			alias:   "github-work",
			want:    "Host github-work2\n  User git\n",
		},
		{
			name:    "multi-pattern host line is not a match",
			content: "Host github-work other\n  User git\n",
			alias:   "github-work",
			want:    "Host github-work other\n  User git\n",
		},
		{
			name:        "trailing whitespace on header still matches",
			content:     "Host github-work  \r\n  User git\r\nHost b\n",
			alias:       "github-work",
			want:        "Host b\n",
			wantRemoved: true,
		},
		{
			name:    "indented Host is not a boundary",
			content: "Match all\n  Host github-work\n",
			alias:   "github-work",
			want:    "Match all\n  Host github-work\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := excise(tt.content, tt.alias)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestAppendBlock(t *testing.T) {
	block := "Host x\n"

	assert.Equal(t, "Host x\n", appendBlock("", block))
	assert.Equal(t, "a\n\nHost x\n", appendBlock("a\n", block))
	assert.Equal(t, "a\n\nHost x\n", appendBlock("a\n\n", block))
	assert.Equal(t, "a\n\nHost x\n", appendBlock("a", block))
}

func TestFormatAndFindBlock(t *testing.T) {
	content := "Host other\n  User someone\n\n" + formatBlock("github-work", "/home/u/my keys/id_ed25519_work")

	block, ok := findBlock(content, "github-work")
	assert.True(t, ok)
	assert.Equal(t, "github-work", block.HostAlias)
	assert.Equal(t, "github.com", block.HostName)
	assert.Equal(t, "git", block.User)
	assert.Equal(t, "/home/u/my keys/id_ed25519_work", block.IdentityFile)
	assert.True(t, block.IdentitiesOnly)

	_, ok = findBlock(content, "github-personal")
	assert.False(t, ok)
}

func TestSplitOption(t *testing.T) {
	k, v, ok := splitOption("  IdentityFile=~/.ssh/id")
	assert.True(t, ok)
	assert.Equal(t, "IdentityFile", k)
	assert.Equal(t, "~/.ssh/id", v)

	_, _, ok = splitOption("   # comment")
	assert.False(t, ok)
}

func TestHostAliases(t *testing.T) {
	content := "Host *\n  User x\nHost github-work\n  User git\nHost github-a github-b\nHost gitlab-x\nHost github-home \n"
	assert.Equal(t, []string{"github-work", "github-home"}, hostAliases(content, "github-"))
	assert.Empty(t, hostAliases("", "github-"))
}
