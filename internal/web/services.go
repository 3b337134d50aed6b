package web

import "github.com/zhulik/pal"

func Provide() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide(&Renderer{}),
		pal.Provide(&Sessions{}),
		pal.Provide(&MediaStore{}),
		pal.Provide(&Server{}),
	)
}
