//go:build !assert_enabled

package arena

func Assert(condition bool) {}
