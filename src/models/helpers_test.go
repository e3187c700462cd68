package models

import "github.com/samber/mo"

func some[T any](v T) mo.Option[T] { return mo.Some(v) }

func someNil[T any]() mo.Option[*T] { return mo.Some[*T](nil) }
