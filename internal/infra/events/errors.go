package events

import "errors"

// デコードできないメッセージ。commitして読み飛ばす
var ErrMalformedEvent = errors.New("malformed event")
