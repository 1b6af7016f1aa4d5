//go:build mobile

// embed.go - 移动端默认配置嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需先把仓库根的 data/ 目录复制到本目录：
//
//	cp -r data mobile/
//	go build -tags mobile ./mobile
package mobile

import _ "embed"

//go:embed data/game.yaml
var defaultConfigData []byte
