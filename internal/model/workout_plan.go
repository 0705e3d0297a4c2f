package model

import "time"

// PlanType はワークアウトプランの難易度を表す。
type PlanType string

const (
	PlanTypeBeginner     PlanType = "Beginner"
	PlanTypeIntermediate PlanType = "Intermediate"
	PlanTypeAdvanced     PlanType = "Advanced"
)

// IsValid はPlanTypeが定義済みの難易度のいずれかであるかを返す。
func (t PlanType) IsValid() bool {
	switch t {
	case PlanTypeBeginner, PlanTypeIntermediate, PlanTypeAdvanced:
		return true
	}
	return false
}

// Exercise はプラン内の1つのエクササイズエントリを表す。
// すべてのフィールドはエントリごとに独立して省略可能。
type Exercise struct {
	Name     *string `json:"name,omitempty"`
	Sets     *int    `json:"sets,omitempty"`
	Reps     *int    `json:"reps,omitempty"`
	Duration *int    `json:"duration,omitempty"` // 分単位
	Day      *string `json:"day,omitempty"`
}

// WorkoutPlanPatch は部分更新の入力を表す。
// nilのフィールドは「変更しない」を意味し、既存の値が維持される。
type WorkoutPlanPatch struct {
	PlanName  *string
	Type      *PlanType
	Exercises []Exercise
}

// WorkoutPlan はユーザーが所有するワークアウトプランを表す。
// UserIDは作成時に認証済みユーザーから設定され、以後変更されない。
type WorkoutPlan struct {
	ID        string
	UserID    string
	PlanName  string
	Type      PlanType
	Exercises []Exercise
	CreatedAt time.Time
}
