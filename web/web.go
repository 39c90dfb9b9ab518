package web

import "embed"

// StaticFS 嵌入的后台管理静态页面
//
//go:embed index.html
var StaticFS embed.FS
