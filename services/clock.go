package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"backend/entity"
)

// Now is stubbed in tests that exercise promotion validity windows.
var Now = time.Now

// itemKey identifies a cart line for guest-cart merging: same menu item with
// the same set of (option, option group) selections.
func itemKey(item *entity.CartItem) string {
	pairs := make([]string, 0, len(item.Options))
	for _, o := range item.Options {
		pairs = append(pairs, fmt.Sprintf("%d:%d", o.OptionGroupID, o.OptionID))
	}
	sort.Strings(pairs)
	return fmt.Sprintf("%d|%s", item.MenuItemID, strings.Join(pairs, ","))
}
