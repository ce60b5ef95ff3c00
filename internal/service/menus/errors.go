package menus

import "errors"

var (
	// ErrMenuNotFound возвращается, когда пункт меню не найден
	ErrMenuNotFound = errors.New("menus: menu item not found")

	// ErrNoMenu возвращается, когда не выбрано ни одного пункта меню
	ErrNoMenu = errors.New("menus: at least one menu item is required")

	// ErrDuplicateMenu возвращается при повторе пункта меню в выборе
	ErrDuplicateMenu = errors.New("menus: menu item selected twice")
)
