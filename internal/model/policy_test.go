// internal/model/policy_test.go
package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThresholdPolicy(t *testing.T) {
	tests := []struct {
		name    string
		short   int
		medium  int
		wantErr bool
	}{
		{name: "正常系: short < medium", short: 50, medium: 100, wantErr: false},
		{name: "正常系: 最小の有効な組み合わせ", short: 1, medium: 2, wantErr: false},
		{name: "異常系: short == medium", short: 50, medium: 50, wantErr: true},
		{name: "異常系: short > medium", short: 100, medium: 50, wantErr: true},
		{name: "異常系: short がゼロ", short: 0, medium: 100, wantErr: true},
		{name: "異常系: medium がゼロ", short: 50, medium: 0, wantErr: true},
		{name: "異常系: 負の閾値", short: -1, medium: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := NewThresholdPolicy(tt.short, tt.medium)
			if tt.wantErr {
				require.Error(t, err)
				var policyErr *InvalidPolicyError
				require.ErrorAs(t, err, &policyErr)
				assert.Equal(t, tt.short, policyErr.Short)
				assert.Equal(t, tt.medium, policyErr.Medium)
				assert.True(t, errors.Is(err, ErrInvalidInput))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.short, policy.ShortThreshold())
				assert.Equal(t, tt.medium, policy.MediumThreshold())
			}
		})
	}
}

func TestThresholdPolicy_Classify(t *testing.T) {
	policy, err := NewThresholdPolicy(50, 100)
	require.NoError(t, err)

	tests := []struct {
		name      string
		wordCount int
		want      ContentLength
	}{
		{name: "ゼロ語は short", wordCount: 0, want: ContentLengthShort},
		{name: "閾値未満は short", wordCount: 49, want: ContentLengthShort},
		{name: "ちょうど short 閾値は short (境界は下側に含む)", wordCount: 50, want: ContentLengthShort},
		{name: "short 閾値 + 1 は medium", wordCount: 51, want: ContentLengthMedium},
		{name: "ちょうど medium 閾値は medium (境界は下側に含む)", wordCount: 100, want: ContentLengthMedium},
		{name: "medium 閾値 + 1 は long", wordCount: 101, want: ContentLengthLong},
		{name: "大きな語数は long", wordCount: 10000, want: ContentLengthLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Classify(tt.wordCount))
		})
	}
}

func TestNote_CountWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "空文字列は0語", content: "", want: 0},
		{name: "空白のみは0語", content: "   \t\n  ", want: 0},
		{name: "単語1つ", content: "hola", want: 1},
		{name: "連続する空白は1区切り", content: "uno  dos   tres", want: 3},
		{name: "前後の空白は無視", content: "  primero ultimo  ", want: 2},
		{name: "改行・タブも区切り", content: "a\tb\nc d", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := &Note{Content: tt.content}
			assert.Equal(t, tt.want, note.CountWords())
		})
	}
}

func TestUtility_Policy(t *testing.T) {
	t.Run("正常系: 保存済み閾値からポリシーを構築", func(t *testing.T) {
		u := &Utility{ShortWordCountThreshold: 10, MediumWordCountThreshold: 20}
		policy, err := u.Policy()
		require.NoError(t, err)
		assert.Equal(t, ContentLengthShort, policy.Classify(10))
		assert.Equal(t, ContentLengthMedium, policy.Classify(11))
	})

	t.Run("異常系: DBに不整合な閾値が入っていてもエラーを返すだけ", func(t *testing.T) {
		u := &Utility{ShortWordCountThreshold: 30, MediumWordCountThreshold: 10}
		_, err := u.Policy()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}
