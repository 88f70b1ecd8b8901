package webgpu

// WGSL compute shaders for the resampling kernels.
// Using string constants instead of embed for simplicity.

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// Reduction op codes shared between Go and WGSL.
const (
	opNanSum  = 0
	opSum     = 1
	opNanMean = 2
	opMean    = 3
	opNanMax  = 4
	opMax     = 5
)

// blockReduceShader reduces a (newRows, rowLooks, newCols, colLooks)
// regrouping over the two intra-block axes. One invocation produces one
// output cell. NaN cells are detected with v != v; the nan* ops skip them.
const blockReduceShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    new_rows: u32,
    row_looks: u32,
    new_cols: u32,
    col_looks: u32,
    op: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let total = params.new_rows * params.new_cols;
    if (idx >= total) {
        return;
    }
    let r = idx / params.new_cols;
    let c = idx % params.new_cols;

    let s1 = params.new_cols * params.col_looks;
    let s0 = params.row_looks * s1;

    var sum: f32 = 0.0;
    var best: f32 = -3.4028235e38;
    var count: u32 = 0u;
    var saw_nan: bool = false;
    let block = params.row_looks * params.col_looks;
    let skip_nan = params.op == 0u || params.op == 2u || params.op == 4u;

    for (var i: u32 = 0u; i < params.row_looks; i = i + 1u) {
        for (var j: u32 = 0u; j < params.col_looks; j = j + 1u) {
            let v = input[r * s0 + i * s1 + c * params.col_looks + j];
            let is_nan = v != v;
            if (is_nan) {
                saw_nan = true;
                if (skip_nan) {
                    continue;
                }
            }
            sum = sum + v;
            if (v > best || count == 0u) {
                best = v;
            }
            count = count + 1u;
        }
    }

    // WGSL rejects the constant expression 0.0 / 0.0, so NaN is spelled out.
    let nan = bitcast<f32>(0x7fc00000u);

    var out: f32;
    switch params.op {
        case 0u: { // nansum: all-missing block sums to 0
            out = sum;
        }
        case 1u: {
            out = sum;
        }
        case 2u: { // nanmean: all-missing block is NaN
            if (count == 0u) {
                out = nan;
            } else {
                out = sum / f32(count);
            }
        }
        case 3u: {
            out = sum / f32(block);
        }
        case 4u: { // nanmax: all-missing block is NaN
            if (count == 0u) {
                out = nan;
            } else {
                out = best;
            }
        }
        default: { // max: NaN propagates
            if (saw_nan) {
                out = nan;
            } else {
                out = best;
            }
        }
    }
    result[idx] = out;
}
`

// repeatShader repeats each element n times along one axis. The array is
// viewed as (outer, axis_len, inner); one invocation writes one output cell.
const repeatShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    outer: u32,
    axis_len: u32,
    inner: u32,
    n: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let total = params.outer * params.axis_len * params.n * params.inner;
    if (idx >= total) {
        return;
    }
    let expanded = params.axis_len * params.n;
    let o = idx / (expanded * params.inner);
    let rem = idx % (expanded * params.inner);
    let k = rem / params.inner;
    let i = rem % params.inner;
    let j = k / params.n;
    result[idx] = input[(o * params.axis_len + j) * params.inner + i];
}
`
