// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package generator is the client for the external question-generation
service.

The service is a black box to this backend: Generate sends a
TestRequest and returns whatever question objects come back, without
interpreting their shape.

	gen := generator.NewHTTPGenerator(cfg.GeneratorURL)
	questions, err := gen.Generate(ctx, generator.TestRequest{
		Topic:        "Demo topic",
		Difficulty:   "easy",
		NumQuestions: 5,
		QuestionType: "mcq",
	})

The Generator interface exists so handlers can be tested against a stub
without a live service.
*/
package generator
