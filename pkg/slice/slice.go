// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package slice complements the standard [slices] package with small generic
helpers (Map, Filter, GroupBy).
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns only the elements for which predicate is true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	if input == nil {
		return nil
	}

	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

// Group is one bucket produced by [GroupBy].
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy buckets input by key.
//
// Groups appear in the order their key was first seen, and items keep their
// input order inside a group. The key function may fail, in which case no
// groups are returned.
func GroupBy[K comparable, T any](input []T, key func(T) (K, error)) ([]Group[K, T], error) {
	var groups []Group[K, T]
	position := make(map[K]int)

	for _, v := range input {
		k, err := key(v)
		if err != nil {
			return nil, err
		}

		index, seen := position[k]
		if !seen {
			index = len(groups)
			position[k] = index
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[index].Items = append(groups[index].Items, v)
	}

	return groups, nil
}
