package account

import "errors"

// Account ドメインのエラー定義
var (
	ErrAccountNotFound     = errors.New("アカウントが見つかりません")
	ErrInsufficientBalance = errors.New("残高が不足しています")
	ErrAlreadySettled      = errors.New("この予約は既に決済されています")
	ErrApproverRequired    = errors.New("この操作には承認者権限が必要です")
	ErrUsernameRequired    = errors.New("ユーザー名は必須です")
	ErrInvalidRole         = errors.New("不明な役割です")
	ErrNegativeBalance     = errors.New("残高は0以上である必要があります")
	ErrInvalidAmount       = errors.New("金額は1以上である必要があります")
)
