package build

// preludeName is the name errors in the prelude are reported under.
const preludeName = "<prelude>"

// preludeSource is compiled before the sources of every project that does not
// disable it.  It defines the implicit context every function receives and the
// string type string literals construct.
const preludeSource = `
Context :: struct {
	data: *void;
	allocator: *void;
}

string :: struct {
	data: *char;
	count: i64;
}

__string_make :: (data: *char, count: i64) -> string {
	result: string;
	result.data = data;
	result.count = count;
	return result;
}
`
