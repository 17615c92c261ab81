package main

import (
	"github.com/opensvc/stratis/core/stratis"
)

func main() {
	stratis.Execute()
}
