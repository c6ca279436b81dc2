package web

import "embed"

// StaticFS 嵌入的前端页面
//
//go:embed index.html
var StaticFS embed.FS
