package cartstore

import "errors"

var (
	// ErrDuplicateItem возвращается при повторном добавлении того же слота в корзину
	ErrDuplicateItem = errors.New("cartstore: item already in cart")
)
