// internal/model/policy.go
package model

// ContentLength はノート本文の分類結果
type ContentLength string

const (
	ContentLengthShort  ContentLength = "short"
	ContentLengthMedium ContentLength = "medium"
	ContentLengthLong   ContentLength = "long"
)

// ThresholdPolicy はユーティリティごとの語数閾値のスナップショット。
// 生成後は不変。フィールドを非公開にして Classify 以外の変更経路を塞ぐ。
type ThresholdPolicy struct {
	short  int
	medium int
}

// NewThresholdPolicy は閾値を検証してポリシーを生成します。
// short >= medium、またはどちらかが正でない場合は InvalidPolicyError。
func NewThresholdPolicy(short, medium int) (ThresholdPolicy, error) {
	if short <= 0 || medium <= 0 || short >= medium {
		return ThresholdPolicy{}, &InvalidPolicyError{Short: short, Medium: medium}
	}
	return ThresholdPolicy{short: short, medium: medium}, nil
}

// Classify は語数を short / medium / long に分類します。
// 境界は下側に含む: ちょうど short 語なら short、ちょうど medium 語なら medium。
func (p ThresholdPolicy) Classify(wordCount int) ContentLength {
	switch {
	case wordCount <= p.short:
		return ContentLengthShort
	case wordCount <= p.medium:
		return ContentLengthMedium
	default:
		return ContentLengthLong
	}
}

func (p ThresholdPolicy) ShortThreshold() int  { return p.short }
func (p ThresholdPolicy) MediumThreshold() int { return p.medium }
