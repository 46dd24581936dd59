package game

import "errors"

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrMerchantNotFound  = errors.New("merchant not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
