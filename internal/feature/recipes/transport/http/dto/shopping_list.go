package dto

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"foodgram_backend/internal/feature/recipes/domain/entity"
)

// ShoppingListContentType は買い物リストのダウンロード形式です。
const ShoppingListContentType = "text/plain; charset=utf-8"

// RenderShoppingList は買い物リストをテキストに整形します。
// 1行目はユーザー名の見出し、以降は材料ごとに "  • <名前> - <合計> <単位>;" です。
func RenderShoppingList(list *entity.ShoppingList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for %s:\n", list.Username)
	for _, item := range list.Items {
		fmt.Fprintf(&b, "  • %s - %d %s;\n", capitalize(item.Name), item.Total, item.MeasurementUnit)
	}
	return b.String()
}

// ShoppingListFilename は Content-Disposition に使うファイル名を返します。
func ShoppingListFilename(username string) string {
	return "shopping_list_" + username + ".txt"
}

// capitalize は先頭の文字を大文字に、残りを小文字にします。
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
